package money_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"nestling/shared/failure"
	"nestling/shared/money"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		wantErr  bool
	}{
		{
			name:     "valid amount",
			amount:   decimal.RequireFromString("12.50"),
			currency: "USD",
		},
		{
			name:     "zero amount is valid",
			amount:   decimal.Zero,
			currency: "USD",
		},
		{
			name:     "negative amount",
			amount:   decimal.RequireFromString("-0.01"),
			currency: "USD",
			wantErr:  true,
		},
		{
			name:    "missing currency",
			amount:  decimal.RequireFromString("10"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.New(tt.amount, tt.currency)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, m.Amount.Equal(tt.amount))
			assert.Equal(t, tt.currency, m.Currency)
		})
	}
}

func TestAdd(t *testing.T) {
	a, _ := money.New(decimal.RequireFromString("30"), "USD")
	b, _ := money.New(decimal.RequireFromString("15"), "USD")

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.RequireFromString("45")))

	other, _ := money.New(decimal.RequireFromString("1"), "EUR")
	_, err = a.Add(other)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	m, _ := money.New(decimal.RequireFromString("90"), "USD")
	assert.Equal(t, "90.00 USD", m.String())
}
