package domain

import (
	"fmt"
	"strings"
	"time"
)

type CardType string

const (
	CardVisa       CardType = "Visa"
	CardMastercard CardType = "Mastercard"
	CardAmex       CardType = "American Express"
	CardDiners     CardType = "Diners Club"
)

func (t CardType) Valid() bool {
	switch t {
	case CardVisa, CardMastercard, CardAmex, CardDiners:
		return true
	}
	return false
}

// CreditCard keeps only the last four digits of the number.
type CreditCard struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Last4     string    `json:"-"`
	Holder    string    `json:"holder"`
	Expiry    time.Time `json:"expiry"`
	Type      CardType  `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (c CreditCard) MaskedNumber() string {
	return "****" + c.Last4
}

// ExpiredAt treats the expiry date as valid through the end of that day.
func (c CreditCard) ExpiredAt(now time.Time) bool {
	return !now.Before(c.Expiry.AddDate(0, 0, 1))
}

// LastFour validates a card number (13-19 digits, spaces and dashes ignored) and
// returns its last four digits.
func LastFour(number string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
	if len(digits) < 13 || len(digits) > 19 {
		return "", fmt.Errorf("%w: number must have 13 to 19 digits", ErrInvalidCard)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: number must contain digits only", ErrInvalidCard)
		}
	}
	return digits[len(digits)-4:], nil
}
