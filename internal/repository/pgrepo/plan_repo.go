package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/pkg/uow"
)

const planColumns = "id, created_at, updated_at, name, daily_return, min_investment, duration_days"

type PlanRepository struct {
	db uow.DBTX
}

func NewPlanRepository(db uow.DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (p *PlanRepository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	row := p.db.QueryRow(ctx, "SELECT "+planColumns+" FROM plans WHERE id = $1", id)
	plan, err := scanPlan(row)
	if err != nil {
		return nil, convertErr(err, "getting plan by id %d", id)
	}
	return plan, nil
}

// FindByName ищет план по имени без учета регистра.
func (p *PlanRepository) FindByName(ctx context.Context, name string) (*domain.Plan, error) {
	row := p.db.QueryRow(ctx, "SELECT "+planColumns+" FROM plans WHERE lower(name) = lower($1)", name)
	plan, err := scanPlan(row)
	if err != nil {
		return nil, convertErr(err, "finding plan by name %s", name)
	}
	return plan, nil
}

func (p *PlanRepository) GetAll(ctx context.Context) ([]domain.Plan, error) {
	rows, err := p.db.Query(ctx, "SELECT "+planColumns+" FROM plans ORDER BY min_investment")
	if err != nil {
		return nil, convertErr(err, "getting plans")
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		plan, scanErr := scanPlan(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting plans")
		}
		plans = append(plans, *plan)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting plans")
	}
	return plans, nil
}

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var plan domain.Plan
	err := row.Scan(
		&plan.ID,
		&plan.CreatedAt,
		&plan.UpdatedAt,
		&plan.Name,
		&plan.DailyReturn,
		&plan.MinInvestment,
		&plan.DurationDays,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &plan, nil
}
