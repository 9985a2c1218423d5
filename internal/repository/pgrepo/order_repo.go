package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/repository/repoargs"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

const orderColumns = "id, created_at, updated_at, user_id, amount, description, status"

func (o *OrderRepository) Create(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, amount, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		args.ID, args.UserID, args.Amount, args.Description, args.Status)

	order, scanErr := scanOrder(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "creating order %s", args.ID)
	}
	return order, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1`, id)

	order, scanErr := scanOrder(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "finding order %s", id)
	}
	return order, nil
}

// GetByUserID возвращает заказы юзера отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting orders by user %s", userID)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order row")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting orders by user %s", userID)
	}
	return orders, nil
}

func (o *OrderRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.OrderStatusType,
) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, status)

	order, scanErr := scanOrder(row)
	if scanErr != nil {
		return nil, convertErr(scanErr, "updating status of order %s", id)
	}
	return order, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.Amount,
		&order.Description,
		&order.Status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}
