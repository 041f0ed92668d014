package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	// Create returns domain.ErrTicketCodeCollision when the code is taken. The
	// conflict does not abort the surrounding transaction.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `t.id, t.reservation_id, t.passenger_id, t.invoice_id, t.code, t.status, t.issued_at`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.ReservationID, &t.PassengerID, &t.InvoiceID, &t.Code, &t.Status, &t.IssuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("scan ticket: %w", err)
	}
	return &t, nil
}

func (r *PGTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	if t.Status == "" {
		t.Status = domain.TicketStatusIssued
	}
	err := conn(ctx, r.db).QueryRow(ctx, `
INSERT INTO tickets (reservation_id, passenger_id, invoice_id, code, status)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO NOTHING
RETURNING id, issued_at`, t.ReservationID, t.PassengerID, t.InvoiceID, t.Code, t.Status).Scan(&t.ID, &t.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTicketCodeCollision
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return scanTicket(conn(ctx, r.db).QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets t WHERE t.id = $1`, id))
}

func (r *PGTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets t ORDER BY t.id`)
}

func (r *PGTicketRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return r.query(ctx, `
SELECT `+ticketColumns+`
FROM tickets t
JOIN reservations r ON r.id = t.reservation_id
JOIN orders o ON o.id = r.order_id
WHERE o.user_id = $1
ORDER BY t.id`, userID)
}

func (r *PGTicketRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets t WHERE t.invoice_id = $1 ORDER BY t.id`, invoiceID)
}

func (r *PGTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	return scanTicket(conn(ctx, r.db).QueryRow(ctx, `
UPDATE tickets t SET status = $2 WHERE t.id = $1
RETURNING `+ticketColumns, id, status))
}

func (r *PGTicketRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Ticket, error) {
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
