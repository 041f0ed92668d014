package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `r.id, r.order_id, r.flight_id, r.category_id, r.seat_count, r.unit_price, r.subtotal, r.created_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(&res.ID, &res.OrderID, &res.FlightID, &res.CategoryID, &res.SeatCount, &res.UnitPrice, &res.Subtotal, &res.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("scan reservation: %w", err)
	}
	return &res, nil
}

func (r *PGReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO reservations (order_id, flight_id, category_id, seat_count, unit_price, subtotal)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`, res.OrderID, res.FlightID, res.CategoryID, res.SeatCount, res.UnitPrice, res.Subtotal).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return scanReservation(conn(ctx, r.db).QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1`, id))
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations r ORDER BY r.id`)
}

func (r *PGReservationRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations r WHERE r.order_id = $1 ORDER BY r.id`, orderID)
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return r.query(ctx, `
SELECT `+reservationColumns+`
FROM reservations r
JOIN orders o ON o.id = r.order_id
WHERE o.user_id = $1
ORDER BY r.id`, userID)
}

func (r *PGReservationRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderBilled
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *PGReservationRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Reservation, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
