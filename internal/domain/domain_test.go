package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFareClass(t *testing.T) {
	testCases := []struct {
		age      int
		expected FareClass
	}{
		{0, FareClassInfant},
		{1, FareClassInfant},
		{2, FareClassChild},
		{11, FareClassChild},
		{12, FareClassAdult},
		{120, FareClassAdult},
	}

	for _, tc := range testCases {
		class, err := DeriveFareClass(tc.age)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, class, "age %d", tc.age)
	}

	for _, age := range []int{-1, 121} {
		_, err := DeriveFareClass(age)
		assert.ErrorIs(t, err, ErrInvalidAge, "age %d", age)
	}
}

func TestResolveFareClass_Mismatch(t *testing.T) {
	_, err := ResolveFareClass(8, FareClassAdult)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFareClassMismatch)

	var mismatch *FareClassMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, FareClassChild, mismatch.Expected)
	assert.Contains(t, err.Error(), `"child"`)

	class, err := ResolveFareClass(8, FareClassChild)
	require.NoError(t, err)
	assert.Equal(t, FareClassChild, class)
}

func TestNewPassenger_Validation(t *testing.T) {
	p, err := NewPassenger(3, "  Ana Perez ", " 1712345678 ", 30, "")
	require.NoError(t, err)
	assert.Equal(t, "Ana Perez", p.Name)
	assert.Equal(t, "1712345678", p.DocumentID)
	assert.Equal(t, FareClassAdult, p.FareClass)
	assert.Equal(t, int64(3), p.ReservationID)

	_, err = NewPassenger(3, "Al", "1712345678", 30, "")
	assert.ErrorIs(t, err, ErrInvalidPassenger)

	_, err = NewPassenger(3, "Ana Perez", "123", 30, "")
	assert.ErrorIs(t, err, ErrInvalidPassenger)

	_, err = NewPassenger(3, "Ana Perez", "1712345678", 130, "")
	assert.ErrorIs(t, err, ErrInvalidAge)
}

func TestInvoiceAmounts(t *testing.T) {
	tax, total := InvoiceAmounts(decimal.NewFromInt(300))
	assert.True(t, tax.Equal(decimal.NewFromInt(36)), tax.String())
	assert.True(t, total.Equal(decimal.NewFromInt(336)), total.String())

	tax, total = InvoiceAmounts(decimal.RequireFromString("99.99"))
	assert.Equal(t, "12", tax.String())
	assert.Equal(t, "111.99", total.String())

	tax, _ = InvoiceAmounts(decimal.RequireFromString("10.05"))
	assert.Equal(t, "1.21", tax.String())
}

func TestNewInvoice(t *testing.T) {
	inv := NewInvoice(7, 9, decimal.NewFromInt(300))
	assert.Equal(t, int64(7), inv.OrderID)
	assert.Equal(t, int64(9), inv.PaymentID)
	assert.True(t, inv.Total.Equal(inv.Subtotal.Add(inv.Tax)))
}

func TestReservationSubtotalAndSum(t *testing.T) {
	sub := ReservationSubtotal(decimal.NewFromInt(150), 2)
	assert.True(t, sub.Equal(decimal.NewFromInt(300)))

	total := SumSubtotals([]Reservation{
		{Subtotal: decimal.NewFromInt(300)},
		{Subtotal: decimal.RequireFromString("89.50")},
	})
	assert.Equal(t, "389.5", total.String())
	assert.True(t, SumSubtotals(nil).IsZero())
}

func TestNewVerificationCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, VerificationCodeLength)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', code)
		}
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 150)
}

func TestPaymentExpired(t *testing.T) {
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	p := Payment{CreatedAt: created}

	assert.False(t, p.Expired(created.Add(4*time.Minute), 5*time.Minute))
	assert.False(t, p.Expired(created.Add(5*time.Minute), 5*time.Minute))
	assert.True(t, p.Expired(created.Add(5*time.Minute+time.Second), 5*time.Minute))
	assert.False(t, p.Expired(created.Add(time.Hour), 0))
}

func TestNewTicketCode(t *testing.T) {
	a, b := NewTicketCode(), NewTicketCode()
	assert.Len(t, a, 15)
	assert.Regexp(t, `^TK-[0-9A-F]{12}$`, a)
	assert.NotEqual(t, a, b)
}

func TestTicketStatusTransitions(t *testing.T) {
	assert.True(t, TicketStatusIssued.CanTransition(TicketStatusUsed))
	assert.True(t, TicketStatusIssued.CanTransition(TicketStatusCancelled))
	assert.False(t, TicketStatusUsed.CanTransition(TicketStatusIssued))
	assert.False(t, TicketStatusCancelled.CanTransition(TicketStatusUsed))
	assert.False(t, TicketStatusIssued.CanTransition(TicketStatusIssued))
}

func TestLastFour(t *testing.T) {
	last4, err := LastFour("4111 1111-1111 1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", last4)

	_, err = LastFour("1234")
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = LastFour("4111a11111111234")
	assert.ErrorIs(t, err, ErrInvalidCard)

	card := CreditCard{Last4: last4}
	assert.Equal(t, "****1234", card.MaskedNumber())
}

func TestOrderStatusCanTransition(t *testing.T) {
	assert.True(t, OrderStatusCart.CanTransition(OrderStatusCancelled))
	assert.True(t, OrderStatusCancelled.CanTransition(OrderStatusCart))
	assert.True(t, OrderStatusCart.CanTransition(OrderStatusPaid))
	assert.True(t, OrderStatusPaid.CanTransition(OrderStatusPaid))
	assert.False(t, OrderStatusPaid.CanTransition(OrderStatusCancelled))
	assert.False(t, OrderStatusPaid.CanTransition(OrderStatusCart))
	assert.False(t, OrderStatusCart.CanTransition("shipped"))
}

func TestCardExpiredAt(t *testing.T) {
	card := CreditCard{Expiry: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.False(t, card.ExpiredAt(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, card.ExpiredAt(time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, card.ExpiredAt(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)), "expires at the first instant of the next day")
	assert.True(t, card.ExpiredAt(time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC)))
}

func TestInsufficientSeatsError(t *testing.T) {
	err := error(&InsufficientSeatsError{Available: 1, Requested: 2})
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Contains(t, err.Error(), "only 1 available")
}

func TestFlightFareRange(t *testing.T) {
	f := Flight{Categories: []FlightCategory{
		{BasePrice: decimal.NewFromInt(150), AvailableSeats: 0},
		{BasePrice: decimal.NewFromInt(420), AvailableSeats: 3},
		{BasePrice: decimal.NewFromInt(90), AvailableSeats: 0},
	}}
	lo, hi, ok := f.FareRange()
	require.True(t, ok)
	assert.True(t, lo.Equal(decimal.NewFromInt(90)))
	assert.True(t, hi.Equal(decimal.NewFromInt(420)))
	assert.True(t, f.HasAvailableSeats())

	_, _, ok = Flight{}.FareRange()
	assert.False(t, ok)
}

func TestOrderRules(t *testing.T) {
	assert.True(t, Order{Status: OrderStatusCart}.Editable())
	assert.False(t, Order{Status: OrderStatusPaid}.Editable())
	assert.True(t, Order{Status: OrderStatusCart}.Deletable(0))
	assert.False(t, Order{Status: OrderStatusCart}.Deletable(1))
	assert.True(t, Order{Status: OrderStatusCancelled}.Deletable(3))
	assert.False(t, Order{Status: OrderStatusPaid}.Deletable(1))
}
