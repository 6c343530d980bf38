package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zentfin/zent-finance/internal/domain"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"

	balanceCheckConstraint = "users_balance_check"
)

// convertErr нормализует ошибку слоя postgres к доменным ошибкам-маркерам, добавляя
// форматированный контекст:
//   - pgx.ErrNoRows превращается в domain.ErrRecordNotFound;
//   - нарушение уникального ключа - в domain.ErrDuplicateKey;
//   - нарушение CHECK-ограничения на баланс - в domain.ErrNotEnoughBalance
//     (страховка на случай гонки, обошедшей условное обновление);
//   - все остальное возвращается как domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case pgErr.Code == checkViolationCode && pgErr.ConstraintName == balanceCheckConstraint:
			errType = domain.ErrNotEnoughBalance
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
