package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type AccountRepository struct {
	conn uow.DBTX
}

func NewAccountRepository(conn uow.DBTX) *AccountRepository {
	return &AccountRepository{conn: conn}
}

const accountColumns = "id, created_at, updated_at, user_id, balance"

// Create создает счет с нулевым балансом. На счет с уже существующим user_id вернется
// domain.ErrDuplicateKey (уникальный индекс).
func (a *AccountRepository) Create(ctx context.Context, userID string) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		INSERT INTO accounts (user_id, balance)
		VALUES ($1, 0)
		RETURNING `+accountColumns, userID)

	account, scanErr := scanAccount(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating account for user %s", userID)
	}
	return account, nil
}

func (a *AccountRepository) FindByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1`, userID)

	account, scanErr := scanAccount(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "finding account by user %s", userID)
	}
	return account, nil
}

// UpdateBalance выставляет новое значение баланса. Сам расчет (пополнение/списание) — зона
// ответственности сервисного слоя внутри транзакции.
func (a *AccountRepository) UpdateBalance(
	ctx context.Context,
	userID string,
	balance decimal.Decimal,
) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		UPDATE accounts
		SET balance = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING `+accountColumns, userID, balance)

	account, scanErr := scanAccount(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "updating balance for user %s", userID)
	}
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.UserID,
		&account.Balance,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
