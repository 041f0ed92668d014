package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardRepository interface {
	Create(ctx context.Context, card *domain.CreditCard) error
	GetByID(ctx context.Context, id int64) (*domain.CreditCard, error)
	List(ctx context.Context) ([]domain.CreditCard, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error)
	Update(ctx context.Context, card *domain.CreditCard) error
	Delete(ctx context.Context, id int64) error
}

type PGCardRepository struct {
	db *pgxpool.Pool
}

func NewCardRepository(db *pgxpool.Pool) CardRepository {
	return &PGCardRepository{db: db}
}

const cardColumns = `id, user_id, last4, holder, expiry, card_type, active, created_at`

func scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var c domain.CreditCard
	if err := row.Scan(&c.ID, &c.UserID, &c.Last4, &c.Holder, &c.Expiry, &c.Type, &c.Active, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("scan card: %w", err)
	}
	return &c, nil
}

func (r *PGCardRepository) Create(ctx context.Context, c *domain.CreditCard) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO credit_cards (user_id, last4, holder, expiry, card_type, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`, c.UserID, c.Last4, c.Holder, c.Expiry, c.Type, c.Active).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create card: %w", err)
	}
	return nil
}

func (r *PGCardRepository) GetByID(ctx context.Context, id int64) (*domain.CreditCard, error) {
	return scanCard(conn(ctx, r.db).QueryRow(ctx, `SELECT `+cardColumns+` FROM credit_cards WHERE id = $1`, id))
}

func (r *PGCardRepository) List(ctx context.Context) ([]domain.CreditCard, error) {
	return r.query(ctx, `SELECT `+cardColumns+` FROM credit_cards ORDER BY id`)
}

func (r *PGCardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	return r.query(ctx, `SELECT `+cardColumns+` FROM credit_cards WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PGCardRepository) Update(ctx context.Context, c *domain.CreditCard) error {
	res, err := conn(ctx, r.db).Exec(ctx, `
UPDATE credit_cards SET holder = $2, expiry = $3, active = $4
WHERE id = $1`, c.ID, c.Holder, c.Expiry, c.Active)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *PGCardRepository) Delete(ctx context.Context, id int64) error {
	res, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCardInUse
		}
		return fmt.Errorf("delete card: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *PGCardRepository) query(ctx context.Context, sql string, args ...any) ([]domain.CreditCard, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CreditCard, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

var _ CardRepository = (*PGCardRepository)(nil)
