package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository interface {
	// Create assigns Number from invoice_number_seq as INV-YYYYMMDD-NNNNNNNN.
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Invoice, error)
}

type PGInvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &PGInvoiceRepository{db: db}
}

const invoiceColumns = `i.id, i.order_id, i.payment_id, i.number, i.subtotal, i.tax, i.total, i.issued_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := row.Scan(&inv.ID, &inv.OrderID, &inv.PaymentID, &inv.Number, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.IssuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

func (r *PGInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO invoices (order_id, payment_id, number, subtotal, tax, total)
VALUES ($1, $2,
        'INV-' || to_char(now() AT TIME ZONE 'UTC', 'YYYYMMDD') || '-' || lpad(nextval('invoice_number_seq')::text, 8, '0'),
        $3, $4, $5)
RETURNING id, number, issued_at`, inv.OrderID, inv.PaymentID, inv.Subtotal, inv.Tax, inv.Total).
		Scan(&inv.ID, &inv.Number, &inv.IssuedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("payment %d already invoiced: %w", inv.PaymentID, domain.ErrPaymentAlreadyProcessed)
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

func (r *PGInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	return scanInvoice(conn(ctx, r.db).QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices i WHERE i.id = $1`, id))
}

func (r *PGInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	return r.query(ctx, `SELECT `+invoiceColumns+` FROM invoices i ORDER BY i.id`)
}

func (r *PGInvoiceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	return r.query(ctx, `
SELECT `+invoiceColumns+`
FROM invoices i
JOIN orders o ON o.id = i.order_id
WHERE o.user_id = $1
ORDER BY i.id`, userID)
}

func (r *PGInvoiceRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Invoice, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

var _ InvoiceRepository = (*PGInvoiceRepository)(nil)
