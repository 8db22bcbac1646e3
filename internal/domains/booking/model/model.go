package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestling/shared/event"
	"nestling/shared/failure"
	"nestling/shared/model"
	"nestling/shared/money"
	"nestling/shared/qrtoken"
	"nestling/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldFranchiseID   = "franchise_id"
	FieldStartDatetime = "start_datetime"
	FieldBookingStatus = "booking_status"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Booking is a reservation of childcare time at a franchise. It is mutated
// only through its transition methods; each transition validates its
// precondition and returns the emitted event as a value, so the application
// service owns buffering and draining (invariant: PAID implies CONFIRMED,
// CANCELLED is terminal).
type Booking struct {
	ID              string    `db:"id"               json:"id"`
	ReferenceNumber string    `db:"reference_number" json:"reference_number"`
	FranchiseID     string    `db:"franchise_id"     json:"franchise_id"`
	StartDatetime   time.Time `db:"start_datetime"   json:"start_datetime"`
	EndDatetime     time.Time `db:"end_datetime"     json:"end_datetime"`

	// CustomerInfo and ChildInfo are embedded so sqlx flattens their
	// customer_*/child_* columns onto the bookings row.
	CustomerInfo `json:"customer_info"`
	ChildInfo    `json:"child_info"`

	TotalAmount   decimal.Decimal `db:"total_amount"   json:"total_amount"`
	Currency      string          `db:"currency"       json:"currency"`
	BookingStatus BookingStatus   `db:"booking_status" json:"booking_status"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	QRToken       string          `db:"qr_token"       json:"qr_token"`
	model.Metadata
}

// NewBooking constructs a PENDING booking and the BookingCreated event it
// emits. The caller must already have passed availability and pricing checks;
// the window is re-validated here so a malformed value object can never be
// constructed.
func NewBooking(franchiseID string, start, end time.Time, customer CustomerInfo, child ChildInfo, total money.Money) (Booking, event.Event, error) {
	if !end.After(start) {
		return Booking{}, nil, failure.Validation("booking end must be after start")
	}

	now := timezone.Now()
	id := uuid.NewString()

	booking := Booking{
		ID:              id,
		ReferenceNumber: uuid.NewString(),
		FranchiseID:     franchiseID,
		StartDatetime:   start,
		EndDatetime:     end,
		CustomerInfo:    customer,
		ChildInfo:       child,
		TotalAmount:     total.Amount,
		Currency:        total.Currency,
		BookingStatus:   BookingStatusPending,
		PaymentStatus:   PaymentStatusPending,
		QRToken:         qrtoken.Encode(id),
	}
	booking.CreatedAt = now
	booking.ModifiedAt = now

	created := BookingCreated{
		Envelope:      event.NewEnvelope(),
		BookingID:     booking.ID,
		FranchiseID:   franchiseID,
		StartDatetime: start,
		EndDatetime:   end,
		CustomerEmail: customer.Email,
		ChildName:     child.Name,
	}

	return booking, created, nil
}

// Total returns the booking cost as a Money value.
func (b *Booking) Total() money.Money {
	return money.Money{Amount: b.TotalAmount, Currency: b.Currency}
}

// RecordPayment flips payment status to PAID and booking status to CONFIRMED
// in the same transition. Legal only while the booking is payable and the
// payment itself is COMPLETED.
func (b *Booking) RecordPayment(payment *Payment) (event.Event, error) {
	if b.BookingStatus == BookingStatusCancelled {
		return nil, failure.IllegalTransition("booking is cancelled")
	}

	if b.PaymentStatus != PaymentStatusPending {
		return nil, failure.IllegalTransition("booking is already paid")
	}

	if payment.Status != PaymentStateCompleted {
		return nil, failure.IllegalTransition("payment is not completed")
	}

	b.PaymentStatus = PaymentStatusPaid
	b.BookingStatus = BookingStatusConfirmed
	b.ModifiedAt = timezone.Now()

	return PaymentProcessed{
		Envelope:  event.NewEnvelope(),
		BookingID: b.ID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
	}, nil
}

// Cancel marks the booking CANCELLED. The refund amount is the sum of every
// COMPLETED payment, computed by the caller; this transition only records the
// fact. Payment status stays untouched, the external refund workflow acts on
// the emitted event.
func (b *Booking) Cancel(reason string, refund money.Money) (event.Event, error) {
	if b.BookingStatus == BookingStatusCancelled {
		return nil, failure.IllegalTransition("booking is already cancelled")
	}

	b.BookingStatus = BookingStatusCancelled
	b.ModifiedAt = timezone.Now()

	return BookingCancelled{
		Envelope:           event.NewEnvelope(),
		BookingID:          b.ID,
		CancellationReason: reason,
		RefundAmount:       refund.Amount,
		Currency:           refund.Currency,
	}, nil
}
