package domain

import "github.com/shopspring/decimal"

// VerificationNotice is what the user receives after initiating a payment. OrderIDs has
// more than one entry when several orders share the code.
type VerificationNotice struct {
	Email      string          `json:"email"`
	UserName   string          `json:"user_name"`
	Code       string          `json:"code"`
	OrderIDs   []int64         `json:"order_ids"`
	Amount     decimal.Decimal `json:"amount"`
	TTLMinutes int             `json:"ttl_minutes"`
}
