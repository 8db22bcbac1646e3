package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"nestling/internal/domains/booking/model"
	"nestling/internal/domains/booking/service"
	franchiseModel "nestling/internal/domains/franchise/model"
	"nestling/shared/failure"
)

func occupying(n int) []model.Booking {
	bookings := make([]model.Booking, n)
	for i := range bookings {
		bookings[i] = model.Booking{ID: "existing", BookingStatus: model.BookingStatusConfirmed}
	}

	return bookings
}

func TestCheckAvailability(t *testing.T) {
	// 2026-09-07 is a Monday.
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	tests := []struct {
		name        string
		mutate      func(f *franchiseModel.Franchise)
		overlapping []model.Booking
		start, end  time.Time
		wantErr     bool
	}{
		{
			name:   "available",
			mutate: func(*franchiseModel.Franchise) {},
			start:  start,
			end:    end,
		},
		{
			name:    "inactive franchise",
			mutate:  func(f *franchiseModel.Franchise) { f.IsActive = false },
			start:   start,
			end:     end,
			wantErr: true,
		},
		{
			name:    "closed weekday",
			mutate:  func(f *franchiseModel.Franchise) { f.OperatingDays = pq.Int64Array{6, 7} },
			start:   start,
			end:     end,
			wantErr: true,
		},
		{
			name:    "starts before opening",
			mutate:  func(*franchiseModel.Franchise) {},
			start:   start.Add(-3 * time.Hour),
			end:     end,
			wantErr: true,
		},
		{
			name:    "ends after closing",
			mutate:  func(*franchiseModel.Franchise) {},
			start:   start,
			end:     start.Add(11 * time.Hour),
			wantErr: true,
		},
		{
			name:        "at capacity",
			mutate:      func(f *franchiseModel.Franchise) { f.MaxCapacity = 2 },
			overlapping: occupying(2),
			start:       start,
			end:         end,
			wantErr:     true,
		},
		{
			name:        "one seat left",
			mutate:      func(f *franchiseModel.Franchise) { f.MaxCapacity = 2 },
			overlapping: occupying(1),
			start:       start,
			end:         end,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			franchise := rateCard("15.00", "22.50")
			tt.mutate(&franchise)

			err := service.CheckAvailability(franchise, tt.overlapping, tt.start, tt.end)

			if tt.wantErr {
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
