package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the reference data that bookings point at.
type CatalogRepository interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	Cities(ctx context.Context) ([]domain.City, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	Categories(ctx context.Context) ([]domain.SeatCategory, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) Countries(ctx context.Context) ([]domain.Country, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT id, name, iso_code FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Country, error) {
		var c domain.Country
		err := row.Scan(&c.ID, &c.Name, &c.ISOCode)
		return c, err
	})
}

func (r *PGCatalogRepository) Cities(ctx context.Context) ([]domain.City, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
SELECT c.id, c.name, c.airport_code, p.id, p.name, co.id, co.name
FROM cities c
JOIN provinces p ON p.id = c.province_id
JOIN countries co ON co.id = p.country_id
ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.City, error) {
		var c domain.City
		err := row.Scan(&c.ID, &c.Name, &c.AirportCode, &c.ProvinceID, &c.ProvinceName, &c.CountryID, &c.CountryName)
		return c, err
	})
}

func (r *PGCatalogRepository) Airlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT id, name, code, info, active FROM airlines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query airlines: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Airline, error) {
		var a domain.Airline
		err := row.Scan(&a.ID, &a.Name, &a.Code, &a.Info, &a.Active)
		return a, err
	})
}

func (r *PGCatalogRepository) Categories(ctx context.Context) ([]domain.SeatCategory, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT id, name, description FROM seat_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query seat categories: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SeatCategory, error) {
		var c domain.SeatCategory
		err := row.Scan(&c.ID, &c.Name, &c.Description)
		return c, err
	})
}

func (r *PGCatalogRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
