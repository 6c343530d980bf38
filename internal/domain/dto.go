package domain

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

type TransactionStatus string

const (
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusPending  TransactionStatus = "pending"
)
