package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the VAT applied to every invoice.
var TaxRate = decimal.RequireFromString("0.12")

const currencyPlaces = 2

type Invoice struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	PaymentID int64           `json:"payment_id"`
	Number    string          `json:"number"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	IssuedAt  time.Time       `json:"issued_at"`
}

// InvoiceAmounts computes tax rounded to currency precision and the resulting total.
func InvoiceAmounts(subtotal decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(TaxRate).Round(currencyPlaces)
	return tax, subtotal.Add(tax)
}

func NewInvoice(orderID, paymentID int64, subtotal decimal.Decimal) Invoice {
	tax, total := InvoiceAmounts(subtotal)
	return Invoice{
		OrderID:   orderID,
		PaymentID: paymentID,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
	}
}
