package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Passenger, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Passenger, error)
	CountByReservation(ctx context.Context, reservationID int64) (int, error)
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id int64) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `p.id, p.reservation_id, p.name, p.document_id, p.age, p.fare_class`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.ReservationID, &p.Name, &p.DocumentID, &p.Age, &p.FareClass); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassengerNotFound
		}
		return nil, fmt.Errorf("scan passenger: %w", err)
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO passengers (reservation_id, name, document_id, age, fare_class)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, p.ReservationID, p.Name, p.DocumentID, p.Age, p.FareClass).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("create passenger: %w", err)
	}
	return nil
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	return scanPassenger(conn(ctx, r.db).QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers p WHERE p.id = $1`, id))
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	return r.query(ctx, `SELECT `+passengerColumns+` FROM passengers p ORDER BY p.id`)
}

func (r *PGPassengerRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Passenger, error) {
	return r.query(ctx, `SELECT `+passengerColumns+` FROM passengers p WHERE p.reservation_id = $1 ORDER BY p.id`, reservationID)
}

func (r *PGPassengerRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Passenger, error) {
	return r.query(ctx, `
SELECT `+passengerColumns+`
FROM passengers p
JOIN reservations r ON r.id = p.reservation_id
WHERE r.order_id = $1
ORDER BY p.reservation_id, p.id`, orderID)
}

func (r *PGPassengerRepository) CountByReservation(ctx context.Context, reservationID int64) (int, error) {
	var n int
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM passengers WHERE reservation_id = $1`, reservationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count passengers: %w", err)
	}
	return n, nil
}

func (r *PGPassengerRepository) Update(ctx context.Context, p *domain.Passenger) error {
	res, err := conn(ctx, r.db).Exec(ctx, `
UPDATE passengers SET name = $2, document_id = $3, age = $4, fare_class = $5
WHERE id = $1`, p.ID, p.Name, p.DocumentID, p.Age, p.FareClass)
	if err != nil {
		return fmt.Errorf("update passenger: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM passengers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderBilled
		}
		return fmt.Errorf("delete passenger: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrPassengerNotFound
	}
	return nil
}

func (r *PGPassengerRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Passenger, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query passengers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
