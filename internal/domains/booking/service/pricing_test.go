package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestling/internal/domains/booking/service"
	franchiseModel "nestling/internal/domains/franchise/model"
	"nestling/shared/failure"
)

func rateCard(standard, peak string) franchiseModel.Franchise {
	return franchiseModel.Franchise{
		ID:            "franchise-1",
		Name:          "Happy Kids Downtown",
		MaxCapacity:   15,
		StandardRate:  decimal.RequireFromString(standard),
		PeakHourRate:  decimal.RequireFromString(peak),
		OpenTime:      "07:00",
		CloseTime:     "19:00",
		OperatingDays: pq.Int64Array{1, 2, 3, 4, 5},
		IsActive:      true,
	}
}

func TestCalculateCost(t *testing.T) {
	franchise := rateCard("15.00", "22.50")
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     string
	}{
		{
			name:     "standard rate",
			start:    day.Add(9 * time.Hour),
			duration: 6 * time.Hour,
			want:     "90.00",
		},
		{
			name:     "peak rate at start of window",
			start:    day.Add(16 * time.Hour),
			duration: 6 * time.Hour,
			want:     "135.00",
		},
		{
			name:     "peak rate inside window",
			start:    day.Add(17 * time.Hour),
			duration: time.Hour,
			want:     "22.50",
		},
		{
			name:     "hour 18 is past the peak window",
			start:    day.Add(18 * time.Hour),
			duration: time.Hour,
			want:     "15.00",
		},
		{
			// Rate is picked by the start hour alone, running into the
			// evening does not switch mid-booking.
			name:     "standard booking crossing into peak hours",
			start:    day.Add(14 * time.Hour),
			duration: 4 * time.Hour,
			want:     "60.00",
		},
		{
			name:     "fractional hours",
			start:    day.Add(9 * time.Hour),
			duration: 90 * time.Minute,
			want:     "22.50",
		},
		{
			// 3645 seconds at 15.00/h, the 45s past the hour must be billed.
			name:     "sub-minute remainder",
			start:    day.Add(9 * time.Hour),
			duration: time.Hour + 45*time.Second,
			want:     "15.19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := service.CalculateCost(franchise, tt.start, tt.start.Add(tt.duration))
			require.NoError(t, err)

			assert.True(t, cost.Amount.Equal(decimal.RequireFromString(tt.want)), "got %s", cost.Amount)
			assert.Equal(t, "USD", cost.Currency)
		})
	}
}

func TestCalculateCost_InvertedWindow(t *testing.T) {
	franchise := rateCard("15.00", "22.50")
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	_, err := service.CalculateCost(franchise, start, start)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
