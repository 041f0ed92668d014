package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error)
	// ListProcessingByCodeForUpdate locks every processing payment carrying code.
	ListProcessingByCodeForUpdate(ctx context.Context, code string) ([]domain.Payment, error)
	// CodeInUse reports whether a processing payment already carries code.
	CodeInUse(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
	// RejectExpired rejects every processing payment created before cutoff.
	RejectExpired(ctx context.Context, cutoff time.Time) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

const paymentColumns = `id, order_id, card_id, amount, method, status, code, created_at, updated_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.OrderID, &p.CardID, &p.Amount, &p.Method, &p.Status, &p.Code, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return &p, nil
}

func (r *PGPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.Status == "" {
		p.Status = domain.PaymentStatusProcessing
	}
	if p.Method == "" {
		p.Method = domain.PaymentMethodCreditCard
	}
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO payments (order_id, card_id, amount, method, status, code)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`, p.OrderID, p.CardID, p.Amount, p.Method, p.Status, p.Code).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return scanPayment(conn(ctx, r.db).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

func (r *PGPaymentRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	return scanPayment(conn(ctx, r.db).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id))
}

func (r *PGPaymentRepository) ListProcessingByCodeForUpdate(ctx context.Context, code string) ([]domain.Payment, error) {
	return r.query(ctx, `
SELECT `+paymentColumns+`
FROM payments
WHERE code = $1 AND status = 'processing'
ORDER BY id
FOR UPDATE`, code)
}

func (r *PGPaymentRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var inUse bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE code = $1 AND status = 'processing')`, code).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check payment code: %w", err)
	}
	return inUse, nil
}

func (r *PGPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

func (r *PGPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	return scanPayment(conn(ctx, r.db).QueryRow(ctx, `
UPDATE payments SET status = $2, updated_at = now() WHERE id = $1
RETURNING `+paymentColumns, id, status))
}

func (r *PGPaymentRepository) RejectExpired(ctx context.Context, cutoff time.Time) ([]domain.Payment, error) {
	return r.query(ctx, `
UPDATE payments SET status = 'rejected', updated_at = now()
WHERE status = 'processing' AND created_at < $1
RETURNING `+paymentColumns, cutoff)
}

func (r *PGPaymentRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Payment, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
