package domain

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusRejected   PaymentStatus = "rejected"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusProcessing, PaymentStatusSucceeded, PaymentStatusRejected:
		return true
	}
	return false
}

const PaymentMethodCreditCard = "credit_card"

const VerificationCodeLength = 6

type Payment struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	CardID    int64           `json:"card_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    PaymentStatus   `json:"status"`
	Code      string          `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Expired reports whether the verification code is past its validity window at now.
func (p Payment) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.After(p.CreatedAt.Add(ttl))
}

// NewVerificationCode returns a uniformly random 6-digit code from crypto/rand.
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
