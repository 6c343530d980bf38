package pgrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/zentfin/zent-finance/internal/domain"
	"github.com/zentfin/zent-finance/pkg/uow"
)

const userColumns = "id, created_at, updated_at, name, phone, balance, last_suggestion_sent"

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID возвращает юзера по id. Если запись не найдена возвращает ошибку domain.ErrRecordNotFound,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "getting user by id %d", id)
	}
	return user, nil
}

// FindByPhone ищет юзера по номеру телефона, который сообщает шлюз сообщений.
func (u *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE phone = $1", phone)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by phone %s", phone)
	}
	return user, nil
}

func (u *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := u.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, convertErr(err, "getting users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting users")
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting users")
	}
	return users, nil
}

// AddToBalance увеличивает баланс юзера на amount одним атомарным запросом и возвращает
// юзера с новым балансом.
func (u *UserRepository) AddToBalance(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.User, error) {
	row := u.db.QueryRow(
		ctx,
		"UPDATE users SET balance = balance + $2, updated_at = now() WHERE id = $1 RETURNING "+userColumns,
		userID, amount,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "adding %s to balance of user %d", amount, userID)
	}
	return user, nil
}

// SubtractFromBalance уменьшает баланс юзера на amount при условии достаточности средств.
// Условие баланса входит в сам запрос: если средств не хватает, запрос не затрагивает строку
// и метод возвращает domain.ErrNotEnoughBalance. Так конкурентное списание не может увести
// баланс в минус.
func (u *UserRepository) SubtractFromBalance(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.User, error) {
	row := u.db.QueryRow(
		ctx,
		"UPDATE users SET balance = balance - $2, updated_at = now() "+
			"WHERE id = $1 AND balance >= $2 RETURNING "+userColumns,
		userID, amount,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Строка не обновилась: либо юзера нет, либо не хватило баланса. Разделяем случаи
			// дополнительным чтением.
			if _, getErr := u.GetByID(ctx, userID); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrNotEnoughBalance
		}
		return nil, convertErr(err, "subtracting %s from balance of user %d", amount, userID)
	}
	return user, nil
}

// SetLastSuggestionSent обновляет дату последней рекомендации плана.
func (u *UserRepository) SetLastSuggestionSent(ctx context.Context, userID int64, sentAt time.Time) error {
	tag, err := u.db.Exec(
		ctx,
		"UPDATE users SET last_suggestion_sent = $2, updated_at = now() WHERE id = $1",
		userID, sentAt,
	)
	if err != nil {
		return convertErr(err, "setting last suggestion sent for user %d", userID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "setting last suggestion sent for user %d", userID)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Name,
		&user.Phone,
		&user.Balance,
		&user.LastSuggestionSent,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
