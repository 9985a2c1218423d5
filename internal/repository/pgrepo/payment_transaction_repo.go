package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type PaymentTransactionRepository struct {
	conn uow.DBTX
}

func NewPaymentTransactionRepository(conn uow.DBTX) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{conn: conn}
}

const paymentTransactionColumns = "id, created_at, order_id, user_id, amount, success, error_message"

// Create вставляет запись о попытке оплаты. Повторная вставка по тому же order_id вернет
// domain.ErrDuplicateKey — на этом держится идемпотентность обработки платежа.
func (p *PaymentTransactionRepository) Create(
	ctx context.Context,
	args repoargs.PaymentTransactionCreate,
) (*domain.PaymentTransaction, error) {
	row := p.conn.QueryRow(ctx, `
		INSERT INTO payment_transactions (id, order_id, user_id, amount, success, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+paymentTransactionColumns,
		args.ID, args.OrderID, args.UserID, args.Amount, args.Success, args.ErrorMessage)

	transaction, scanErr := scanPaymentTransaction(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating payment transaction for order %s", args.OrderID)
	}
	return transaction, nil
}

func (p *PaymentTransactionRepository) FindByOrderID(
	ctx context.Context,
	orderID uuid.UUID,
) (*domain.PaymentTransaction, error) {
	row := p.conn.QueryRow(ctx, `
		SELECT `+paymentTransactionColumns+`
		FROM payment_transactions
		WHERE order_id = $1`, orderID)

	transaction, scanErr := scanPaymentTransaction(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "finding payment transaction by order %s", orderID)
	}
	return transaction, nil
}

func scanPaymentTransaction(row rowScanner) (*domain.PaymentTransaction, error) {
	var transaction domain.PaymentTransaction
	if err := row.Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.OrderID,
		&transaction.UserID,
		&transaction.Amount,
		&transaction.Success,
		&transaction.ErrorMessage,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &transaction, nil
}
