package service

import (
	"fmt"
	"time"

	"nestling/internal/domains/booking/model"
	franchiseModel "nestling/internal/domains/franchise/model"
	"nestling/shared/failure"
)

// CheckAvailability validates a requested care window against the franchise
// schedule and the bookings already holding overlapping windows. The checks
// run in order and stop at the first failure: active flag, operating day,
// operating hours, capacity. The overlapping set must come from the
// repository under the same lock the caller persists with, otherwise two
// concurrent requests can both pass the capacity check.
func CheckAvailability(franchise franchiseModel.Franchise, overlapping []model.Booking, start, end time.Time) error {
	if !franchise.IsActive {
		return failure.Unavailable("franchise is not active")
	}

	if !franchise.IsOperatingDay(start) {
		return failure.Unavailable("franchise is closed on the requested day")
	}

	if !withinOperatingHours(franchise, start, end) {
		return failure.Unavailable(fmt.Sprintf("requested window is outside operating hours %s-%s", franchise.OpenTime, franchise.CloseTime))
	}

	if len(overlapping) >= franchise.MaxCapacity {
		return failure.Unavailable("franchise is at capacity for the requested window")
	}

	return nil
}

// withinOperatingHours compares clock minutes against the franchise open and
// close times instead of the fixed 8-18 window, so each site honors its own
// schedule. Unparseable schedule fields reject the window.
func withinOperatingHours(franchise franchiseModel.Franchise, start, end time.Time) bool {
	open, err := time.Parse("15:04", franchise.OpenTime)
	if err != nil {
		return false
	}

	close, err := time.Parse("15:04", franchise.CloseTime)
	if err != nil {
		return false
	}

	openMinutes := open.Hour()*60 + open.Minute()
	closeMinutes := close.Hour()*60 + close.Minute()
	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := end.Hour()*60 + end.Minute()

	return startMinutes >= openMinutes && endMinutes <= closeMinutes && endMinutes >= startMinutes
}
