package billing

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/repository"
	"go.uber.org/zap"
)

// BillingUseCase is the read side of invoices and tickets plus the ticket lifecycle.
// Both are only ever created by payment confirmation.
type BillingUseCase interface {
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID int64) ([]domain.Invoice, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	ListTicketsByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error)
}

type BillingService struct {
	invoices repository.InvoiceRepository
	tickets  repository.TicketRepository
	log      *zap.Logger
}

func NewBillingService(invoices repository.InvoiceRepository, tickets repository.TicketRepository, log *zap.Logger) *BillingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BillingService{invoices: invoices, tickets: tickets, log: log}
}

func (s *BillingService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.invoices.GetByID(ctx, id)
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *BillingService) ListInvoicesByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.invoices.ListByUser(ctx, userID)
}

func (s *BillingService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.tickets.GetByID(ctx, id)
}

func (s *BillingService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

func (s *BillingService) ListTicketsByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidID
	}
	return s.tickets.ListByUser(ctx, userID)
}

// UpdateTicketStatus moves an issued ticket to used or cancelled.
func (s *BillingService) UpdateTicketStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticket.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTicketTransition, ticket.Status, status)
	}
	updated, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("ticket status updated", zap.Int64("ticket_id", id), zap.String("code", updated.Code), zap.String("status", string(status)))
	return updated, nil
}

var _ BillingUseCase = (*BillingService)(nil)
