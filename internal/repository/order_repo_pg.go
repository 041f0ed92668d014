package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetForUpdate locks the order row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	UpdateDelivery(ctx context.Context, id int64, method domain.DeliveryMethod) (*domain.Order, error)
	// RecomputeTotal sets the order total to the sum of its reservation subtotals.
	RecomputeTotal(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

const orderColumns = `id, user_id, status, total, delivery_method, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.DeliveryMethod, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.Status == "" {
		order.Status = domain.OrderStatusCart
	}
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO orders (user_id, status, total, delivery_method)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`, order.UserID, order.Status, order.Total, order.DeliveryMethod).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return scanOrder(conn(ctx, r.db).QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *PGOrderRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return scanOrder(conn(ctx, r.db).QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
}

func (r *PGOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PGOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return scanOrder(conn(ctx, r.db).QueryRow(ctx, `
UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
RETURNING `+orderColumns, id, status))
}

func (r *PGOrderRepository) UpdateDelivery(ctx context.Context, id int64, method domain.DeliveryMethod) (*domain.Order, error) {
	return scanOrder(conn(ctx, r.db).QueryRow(ctx, `
UPDATE orders SET delivery_method = $2, updated_at = now() WHERE id = $1
RETURNING `+orderColumns, id, method))
}

func (r *PGOrderRepository) RecomputeTotal(ctx context.Context, id int64) (*domain.Order, error) {
	return scanOrder(conn(ctx, r.db).QueryRow(ctx, `
UPDATE orders
SET total = (SELECT COALESCE(SUM(subtotal), 0) FROM reservations WHERE order_id = $1), updated_at = now()
WHERE id = $1
RETURNING `+orderColumns, id))
}

func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderBilled
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PGOrderRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
