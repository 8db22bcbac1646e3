package model

import (
	"time"

	"github.com/shopspring/decimal"

	"nestling/shared/event"
)

const (
	EventKindBookingCreated   = "BookingCreated"
	EventKindPaymentProcessed = "PaymentProcessed"
	EventKindBookingCancelled = "BookingCancelled"
)

type BookingCreated struct {
	event.Envelope
	BookingID     string    `json:"booking_id"`
	FranchiseID   string    `json:"franchise_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	CustomerEmail string    `json:"customer_email"`
	ChildName     string    `json:"child_name"`
}

func (e BookingCreated) Kind() string { return EventKindBookingCreated }
func (e BookingCreated) Key() string  { return e.BookingID }

type PaymentProcessed struct {
	event.Envelope
	BookingID string          `json:"booking_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

func (e PaymentProcessed) Kind() string { return EventKindPaymentProcessed }
func (e PaymentProcessed) Key() string  { return e.BookingID }

type BookingCancelled struct {
	event.Envelope
	BookingID          string          `json:"booking_id"`
	CancellationReason string          `json:"cancellation_reason"`
	RefundAmount       decimal.Decimal `json:"refund_amount"`
	Currency           string          `json:"currency"`
}

func (e BookingCancelled) Kind() string { return EventKindBookingCancelled }
func (e BookingCancelled) Key() string  { return e.BookingID }
