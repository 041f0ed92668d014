package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceAndTicketRepositories(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)
	fx := testutil.InsertFixture(t, ctx, pool, 10, "150.00")

	txm := NewTxManager(pool)
	orders := NewOrderRepository(pool)
	reservations := NewReservationRepository(pool)
	passengers := NewPassengerRepository(pool)
	cards := NewCardRepository(pool)
	payments := NewPaymentRepository(pool)
	invoices := NewInvoiceRepository(pool)
	tickets := NewTicketRepository(pool)

	order := &domain.Order{UserID: fx.UserID}
	require.NoError(t, orders.Create(ctx, order))
	res := &domain.Reservation{OrderID: order.ID, FlightID: fx.FlightID, CategoryID: fx.CategoryID, SeatCount: 2,
		UnitPrice: decimal.NewFromInt(150), Subtotal: decimal.NewFromInt(300)}
	require.NoError(t, reservations.Create(ctx, res))
	p1 := &domain.Passenger{ReservationID: res.ID, Name: "Ana", DocumentID: "0102030405", Age: 30, FareClass: domain.FareClassAdult}
	p2 := &domain.Passenger{ReservationID: res.ID, Name: "Leo", DocumentID: "0102030406", Age: 7, FareClass: domain.FareClassChild}
	require.NoError(t, passengers.Create(ctx, p1))
	require.NoError(t, passengers.Create(ctx, p2))

	card := &domain.CreditCard{UserID: fx.UserID, Last4: "4242", Holder: "Ana", Expiry: order.CreatedAt.AddDate(2, 0, 0), Type: domain.CardVisa, Active: true}
	require.NoError(t, cards.Create(ctx, card))

	payment := &domain.Payment{OrderID: order.ID, CardID: card.ID, Amount: decimal.NewFromInt(300), Code: "123456"}
	require.NoError(t, payments.Create(ctx, payment))
	assert.Equal(t, domain.PaymentStatusProcessing, payment.Status)

	err := txm.WithTx(ctx, func(ctx context.Context) error {
		inv := domain.NewInvoice(order.ID, payment.ID, payment.Amount)
		if err := invoices.Create(ctx, &inv); err != nil {
			return err
		}
		assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
		assert.Len(t, inv.Number, len("INV-20060102-00000001"))

		first := &domain.Ticket{ReservationID: res.ID, PassengerID: p1.ID, InvoiceID: inv.ID, Code: "TK-AAAAAAAAAAAA"}
		if err := tickets.Create(ctx, first); err != nil {
			return err
		}
		dup := &domain.Ticket{ReservationID: res.ID, PassengerID: p2.ID, InvoiceID: inv.ID, Code: first.Code}
		assert.ErrorIs(t, tickets.Create(ctx, dup), domain.ErrTicketCodeCollision)

		dup.Code = "TK-BBBBBBBBBBBB"
		return tickets.Create(ctx, dup)
	})
	require.NoError(t, err)

	byUser, err := tickets.ListByUser(ctx, fx.UserID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	err = cards.Delete(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrCardInUse)

	_, err = orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.ErrorIs(t, reservations.Delete(ctx, res.ID), domain.ErrOrderBilled)
	assert.ErrorIs(t, passengers.Delete(ctx, p1.ID), domain.ErrOrderBilled)
	assert.ErrorIs(t, orders.Delete(ctx, order.ID), domain.ErrOrderBilled)

	var issued int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE invoice_id IN (SELECT id FROM invoices WHERE order_id = $1)`, order.ID).Scan(&issued))
	assert.Equal(t, 2, issued)
}
