package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	PlanRepoName        RepositoryName = "plan"
	InvestmentRepoName  RepositoryName = "investment"
	TransactionRepoName RepositoryName = "transaction"
)
