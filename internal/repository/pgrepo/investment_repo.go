package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/pkg/uow"
)

const investmentColumns = "id, created_at, updated_at, user_id, plan_id, amount, " +
	"start_date, end_date, last_calculated, active"

type InvestmentRepository struct {
	db uow.DBTX
}

func NewInvestmentRepository(db uow.DBTX) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (i *InvestmentRepository) Create(
	ctx context.Context,
	args repoargs.InvestmentCreate,
) (*domain.Investment, error) {
	row := i.db.QueryRow(
		ctx,
		"INSERT INTO investments (user_id, plan_id, amount, start_date, end_date, last_calculated, active) "+
			"VALUES ($1, $2, $3, $4, $5, $6, true) RETURNING "+investmentColumns,
		args.UserID, args.PlanID, args.Amount, args.StartDate, args.EndDate, args.LastCalculated,
	)
	investment, err := scanInvestment(row)
	if err != nil {
		return nil, convertErr(err, "creating investment for user %d", args.UserID)
	}
	return investment, nil
}

func (i *InvestmentRepository) GetByID(ctx context.Context, id int64) (*domain.Investment, error) {
	row := i.db.QueryRow(ctx, "SELECT "+investmentColumns+" FROM investments WHERE id = $1", id)
	investment, err := scanInvestment(row)
	if err != nil {
		return nil, convertErr(err, "getting investment by id %d", id)
	}
	return investment, nil
}

// GetActive возвращает все активные вклады - единицы работы прохода начисления.
func (i *InvestmentRepository) GetActive(ctx context.Context) ([]domain.Investment, error) {
	rows, err := i.db.Query(ctx, "SELECT "+investmentColumns+" FROM investments WHERE active ORDER BY id")
	if err != nil {
		return nil, convertErr(err, "getting active investments")
	}
	return collectInvestments(rows, "getting active investments")
}

func (i *InvestmentRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Investment, error) {
	rows, err := i.db.Query(
		ctx,
		"SELECT "+investmentColumns+" FROM investments WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting investments of user %d", userID)
	}
	return collectInvestments(rows, "getting investments of user %d", userID)
}

func (i *InvestmentRepository) GetActiveByUserID(ctx context.Context, userID int64) ([]domain.Investment, error) {
	rows, err := i.db.Query(
		ctx,
		"SELECT "+investmentColumns+" FROM investments WHERE user_id = $1 AND active ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting active investments of user %d", userID)
	}
	return collectInvestments(rows, "getting active investments of user %d", userID)
}

// AdvanceWatermark продвигает last_calculated с args.From на args.To. Условие "last_calculated
// все еще равен args.From" входит в сам запрос: если watermark уже продвинут конкурентным проходом,
// строка не обновится и метод вернет domain.ErrVersionConflict. Благодаря этому один и тот же
// интервал не может быть начислен дважды.
func (i *InvestmentRepository) AdvanceWatermark(ctx context.Context, args repoargs.AdvanceWatermark) error {
	tag, err := i.db.Exec(
		ctx,
		"UPDATE investments SET last_calculated = $2, updated_at = now() "+
			"WHERE id = $1 AND active AND last_calculated = $3",
		args.ID, args.To, args.From,
	)
	if err != nil {
		return convertErr(err, "advancing watermark of investment %d", args.ID)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// Deactivate переводит вклад в неактивное состояние, если дата окончания уже прошла.
// Переход терминальный: условие active входит в запрос, поэтому повторная деактивация
// вернет domain.ErrVersionConflict, которую вызывающая сторона трактует как no-op.
func (i *InvestmentRepository) Deactivate(ctx context.Context, id int64, asOf time.Time) error {
	tag, err := i.db.Exec(
		ctx,
		"UPDATE investments SET active = false, updated_at = now() "+
			"WHERE id = $1 AND active AND end_date < $2",
		id, asOf,
	)
	if err != nil {
		return convertErr(err, "deactivating investment %d", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

func collectInvestments(rows pgx.Rows, format string, formatArgs ...any) ([]domain.Investment, error) {
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		investment, scanErr := scanInvestment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, format, formatArgs...)
		}
		investments = append(investments, *investment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, format, formatArgs...)
	}
	return investments, nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var investment domain.Investment
	err := row.Scan(
		&investment.ID,
		&investment.CreatedAt,
		&investment.UpdatedAt,
		&investment.UserID,
		&investment.PlanID,
		&investment.Amount,
		&investment.StartDate,
		&investment.EndDate,
		&investment.LastCalculated,
		&investment.Active,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &investment, nil
}
