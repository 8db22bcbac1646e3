package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"nestling/shared/constant"
	"nestling/shared/failure"
)

// Money is an immutable amount in a single currency. Construct values through
// New or Zero so the non-negative and non-empty-currency invariants hold.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func New(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, failure.Validation("amount cannot be negative")
	}

	if currency == constant.Empty {
		return Money{}, failure.Validation("currency is required")
	}

	return Money{Amount: amount, Currency: currency}, nil
}

// FromFloat builds a Money from a float the boundary received, going through
// the decimal representation to avoid binary rounding drift.
func FromFloat(amount float64, currency string) (Money, error) {
	return New(decimal.NewFromFloat(amount), currency)
}

func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, failure.Validation(fmt.Sprintf("currency mismatch: %s != %s", m.Currency, other.Currency))
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
