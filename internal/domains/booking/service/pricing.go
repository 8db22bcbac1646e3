package service

import (
	"time"

	"github.com/shopspring/decimal"

	franchiseModel "nestling/internal/domains/franchise/model"
	"nestling/shared/constant"
	"nestling/shared/failure"
	"nestling/shared/money"
)

const (
	peakHourStart = 16
	peakHourEnd   = 18
)

var secondsPerHour = decimal.NewFromInt(3600)

// CalculateCost prices a care window against the franchise rate card. The
// rate is chosen by the start hour alone: a booking starting inside the peak
// window pays the peak rate for its whole duration, one starting before it
// pays the standard rate even if it runs into the evening. Fractional hours
// are charged proportionally.
func CalculateCost(franchise franchiseModel.Franchise, start, end time.Time) (money.Money, error) {
	if !end.After(start) {
		return money.Money{}, failure.Validation("booking end must be after start")
	}

	rate := franchise.StandardRate
	if start.Hour() >= peakHourStart && start.Hour() < peakHourEnd {
		rate = franchise.PeakHourRate
	}

	// Duration is priced at second granularity so a window with a sub-minute
	// remainder is not under-billed.
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	amount := rate.Mul(seconds.Div(secondsPerHour)).Round(2)

	return money.New(amount, constant.DefaultCurrency)
}
