package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	Available(ctx context.Context, now time.Time) ([]domain.Flight, error)
	GetCategory(ctx context.Context, flightID, categoryID int64) (*domain.FlightCategory, error)
	ReserveSeats(ctx context.Context, flightID, categoryID int64, seats int) (*domain.FlightCategory, error)
	ReleaseSeats(ctx context.Context, flightID, categoryID int64, seats int) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightSelect = `
SELECT f.id, f.number, f.airline_id, a.name, f.origin_city_id, oc.name, f.destination_city_id, dc.name,
       f.departure_at, f.arrival_at, f.status, f.direct, f.created_at, f.updated_at
FROM flights f
JOIN airlines a ON a.id = f.airline_id
JOIN cities oc ON oc.id = f.origin_city_id
JOIN cities dc ON dc.id = f.destination_city_id`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.queryFlights(ctx, flightSelect+` ORDER BY f.departure_at, f.id`)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	flights, err := r.queryFlights(ctx, flightSelect+` WHERE f.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, domain.ErrFlightNotFound
	}
	return &flights[0], nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, vals ...any) {
		for _, v := range vals {
			args = append(args, v)
			cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		where = append(where, cond)
	}

	if filter.OriginCityID != 0 {
		add("f.origin_city_id = ?", filter.OriginCityID)
	}
	if filter.DestinationCityID != 0 {
		add("f.destination_city_id = ?", filter.DestinationCityID)
	}
	if filter.Date != nil {
		day := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		add("f.departure_at >= ? AND f.departure_at < ?", day, day.AddDate(0, 0, 1))
	}
	if filter.AirlineID != 0 {
		add("f.airline_id = ?", filter.AirlineID)
	}
	if filter.CategoryID != 0 {
		add("EXISTS (SELECT 1 FROM flight_categories fc WHERE fc.flight_id = f.id AND fc.category_id = ?)", filter.CategoryID)
	}
	if filter.Direct != nil {
		add("f.direct = ?", *filter.Direct)
	}
	if filter.Status != "" {
		add("f.status = ?", string(filter.Status))
	}
	if filter.FareMin != nil || filter.FareMax != nil {
		having := []string{}
		vals := []any{}
		if filter.FareMin != nil {
			having = append(having, "MIN(base_price) >= ?")
			vals = append(vals, *filter.FareMin)
		}
		if filter.FareMax != nil {
			having = append(having, "MAX(base_price) <= ?")
			vals = append(vals, *filter.FareMax)
		}
		add("f.id IN (SELECT flight_id FROM flight_categories GROUP BY flight_id HAVING "+strings.Join(having, " AND ")+")", vals...)
	}

	query := flightSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.departure_at, f.id"
	return r.queryFlights(ctx, query, args...)
}

// Available returns future, non-cancelled flights with at least one seat left.
func (r *PGFlightRepository) Available(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	return r.queryFlights(ctx, flightSelect+`
WHERE f.departure_at > $1
  AND f.status <> 'cancelled'
  AND EXISTS (SELECT 1 FROM flight_categories fc WHERE fc.flight_id = f.id AND fc.available_seats > 0)
ORDER BY f.departure_at, f.id`, now)
}

func (r *PGFlightRepository) GetCategory(ctx context.Context, flightID, categoryID int64) (*domain.FlightCategory, error) {
	row := conn(ctx, r.db).QueryRow(ctx, `
SELECT fc.flight_id, fc.category_id, sc.name, fc.total_seats, fc.available_seats, fc.base_price
FROM flight_categories fc
JOIN seat_categories sc ON sc.id = fc.category_id
WHERE fc.flight_id = $1 AND fc.category_id = $2`, flightID, categoryID)
	var c domain.FlightCategory
	if err := row.Scan(&c.FlightID, &c.CategoryID, &c.CategoryName, &c.TotalSeats, &c.AvailableSeats, &c.BasePrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotOffered
		}
		return nil, fmt.Errorf("get flight category: %w", err)
	}
	return &c, nil
}

// ReserveSeats decrements available seats only if enough remain. The check and the
// write are one statement, so concurrent callers serialize on the inventory row.
func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID, categoryID int64, seats int) (*domain.FlightCategory, error) {
	q := conn(ctx, r.db)
	row := q.QueryRow(ctx, `
UPDATE flight_categories
SET available_seats = available_seats - $3
WHERE flight_id = $1 AND category_id = $2 AND available_seats >= $3
RETURNING flight_id, category_id, total_seats, available_seats, base_price`, flightID, categoryID, seats)

	var c domain.FlightCategory
	err := row.Scan(&c.FlightID, &c.CategoryID, &c.TotalSeats, &c.AvailableSeats, &c.BasePrice)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	var available int
	err = q.QueryRow(ctx, `SELECT available_seats FROM flight_categories WHERE flight_id = $1 AND category_id = $2`, flightID, categoryID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotOffered
	}
	if err != nil {
		return nil, fmt.Errorf("read available seats: %w", err)
	}
	return nil, &domain.InsufficientSeatsError{Available: available, Requested: seats}
}

func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID, categoryID int64, seats int) error {
	res, err := conn(ctx, r.db).Exec(ctx, `
UPDATE flight_categories
SET available_seats = available_seats + $3
WHERE flight_id = $1 AND category_id = $2 AND available_seats + $3 <= total_seats`, flightID, categoryID, seats)
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("release %d seats on flight %d category %d: inventory row missing or already full", seats, flightID, categoryID)
	}
	return nil
}

func (r *PGFlightRepository) queryFlights(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	q := conn(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Number, &f.AirlineID, &f.AirlineName, &f.OriginCityID, &f.OriginCity,
			&f.DestinationCityID, &f.DestinationCity, &f.DepartureAt, &f.ArrivalAt, &f.Status, &f.Direct,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return flights, nil
	}

	categories, err := r.categoriesFor(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		flights[i].Categories = categories[flights[i].ID]
	}
	return flights, nil
}

func (r *PGFlightRepository) categoriesFor(ctx context.Context, q querier, flightIDs []int64) (map[int64][]domain.FlightCategory, error) {
	rows, err := q.Query(ctx, `
SELECT fc.flight_id, fc.category_id, sc.name, fc.total_seats, fc.available_seats, fc.base_price
FROM flight_categories fc
JOIN seat_categories sc ON sc.id = fc.category_id
WHERE fc.flight_id = ANY($1)
ORDER BY fc.flight_id, fc.base_price`, flightIDs)
	if err != nil {
		return nil, fmt.Errorf("query flight categories: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.FlightCategory, len(flightIDs))
	for rows.Next() {
		var c domain.FlightCategory
		if err := rows.Scan(&c.FlightID, &c.CategoryID, &c.CategoryName, &c.TotalSeats, &c.AvailableSeats, &c.BasePrice); err != nil {
			return nil, fmt.Errorf("scan flight category: %w", err)
		}
		out[c.FlightID] = append(out[c.FlightID], c)
	}
	return out, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
