package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/internal/repository/repoargs"
	"github.com/zentfin/zent-finance/pkg/uow"
)

const transactionColumns = "id, created_at, user_id, type, amount, status"

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := t.db.QueryRow(
		ctx,
		"INSERT INTO transactions (user_id, type, amount, status) "+
			"VALUES ($1, $2, $3, $4) RETURNING "+transactionColumns,
		args.UserID, args.Type, args.Amount, args.Status,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for user %d", args.Type, args.UserID)
	}
	return transaction, nil
}

// GetByUserSince возвращает транзакции юзера созданные не раньше since,
// отсортированные по дате создания по убыванию.
func (t *TransactionRepository) GetByUserSince(
	ctx context.Context,
	userID int64,
	since time.Time,
) ([]domain.Transaction, error) {
	rows, err := t.db.Query(
		ctx,
		"SELECT "+transactionColumns+" FROM transactions "+
			"WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC",
		userID, since,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions of user %d", userID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting transactions of user %d", userID)
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting transactions of user %d", userID)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.UserID,
		&transaction.Type,
		&transaction.Amount,
		&transaction.Status,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &transaction, nil
}
