package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"nestling/shared/model"
)

const (
	TableName  = "franchises"
	EntityName = "franchise"

	FieldID       = "id"
	FieldName     = "name"
	FieldCity     = "city"
	FieldIsActive = "is_active"
)

// Franchise is a bookable childcare site. Immutable after seeding; bookings
// reference it by id.
type Franchise struct {
	ID            string          `db:"id"             json:"id"`
	Name          string          `db:"name"           json:"name"`
	Address       string          `db:"address"        json:"address"`
	City          string          `db:"city"           json:"city"`
	PostalCode    string          `db:"postal_code"    json:"postal_code"`
	MaxCapacity   int             `db:"max_capacity"   json:"max_capacity"`
	StandardRate  decimal.Decimal `db:"standard_rate"  json:"standard_rate"`
	PeakHourRate  decimal.Decimal `db:"peak_hour_rate" json:"peak_hour_rate"`
	OpenTime      string          `db:"open_time"      json:"open_time"`
	CloseTime     string          `db:"close_time"     json:"close_time"`
	OperatingDays pq.Int64Array   `db:"operating_days" json:"operating_days"`
	IsActive      bool            `db:"is_active"      json:"is_active"`
	model.Metadata
}

// IsOperatingDay reports whether the franchise operates on the ISO weekday of
// the given time (1=Monday .. 7=Sunday).
func (f *Franchise) IsOperatingDay(t time.Time) bool {
	weekday := int64(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	for _, day := range f.OperatingDays {
		if day == weekday {
			return true
		}
	}

	return false
}
