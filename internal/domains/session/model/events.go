package model

import (
	"time"

	"github.com/shopspring/decimal"

	"nestling/shared/event"
)

const (
	EventKindSessionStarted        = "SessionStarted"
	EventKindChildCheckedIn        = "ChildCheckedIn"
	EventKindOvertimeChargeApplied = "OvertimeChargeApplied"
	EventKindChargeApplied         = "ChargeApplied"
	EventKindChildCheckedOut       = "ChildCheckedOut"
	EventKindSessionCompleted      = "SessionCompleted"
)

type SessionStarted struct {
	event.Envelope
	SessionID     string `json:"session_id"`
	BookingID     string `json:"booking_id"`
	StaffMemberID string `json:"staff_member_id"`
	QRTokenUsed   string `json:"qr_token_used"`
}

func (e SessionStarted) Kind() string { return EventKindSessionStarted }
func (e SessionStarted) Key() string  { return e.BookingID }

type ChildCheckedIn struct {
	event.Envelope
	SessionID     string    `json:"session_id"`
	BookingID     string    `json:"booking_id"`
	ChildName     string    `json:"child_name"`
	CheckInTime   time.Time `json:"check_in_time"`
	StaffMemberID string    `json:"staff_member_id"`
}

func (e ChildCheckedIn) Kind() string { return EventKindChildCheckedIn }
func (e ChildCheckedIn) Key() string  { return e.BookingID }

type OvertimeChargeApplied struct {
	event.Envelope
	SessionID       string          `json:"session_id"`
	BookingID       string          `json:"booking_id"`
	OvertimeMinutes int             `json:"overtime_minutes"`
	ChargeAmount    decimal.Decimal `json:"charge_amount"`
	Currency        string          `json:"currency"`
	StaffMemberID   string          `json:"staff_member_id"`
}

func (e OvertimeChargeApplied) Kind() string { return EventKindOvertimeChargeApplied }
func (e OvertimeChargeApplied) Key() string  { return e.BookingID }

type ChargeApplied struct {
	event.Envelope
	SessionID     string          `json:"session_id"`
	BookingID     string          `json:"booking_id"`
	ChargeKind    string          `json:"charge_kind"`
	ChargeAmount  decimal.Decimal `json:"charge_amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	StaffMemberID string          `json:"staff_member_id"`
}

func (e ChargeApplied) Kind() string { return EventKindChargeApplied }
func (e ChargeApplied) Key() string  { return e.BookingID }

type ChildCheckedOut struct {
	event.Envelope
	SessionID            string    `json:"session_id"`
	BookingID            string    `json:"booking_id"`
	CheckOutTime         time.Time `json:"check_out_time"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
	StaffMemberID        string    `json:"staff_member_id"`
}

func (e ChildCheckedOut) Kind() string { return EventKindChildCheckedOut }
func (e ChildCheckedOut) Key() string  { return e.BookingID }

type SessionCompleted struct {
	event.Envelope
	SessionID          string          `json:"session_id"`
	BookingID          string          `json:"booking_id"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Currency           string          `json:"currency"`
	AllPaymentsSettled bool            `json:"all_payments_settled"`
}

func (e SessionCompleted) Kind() string { return EventKindSessionCompleted }
func (e SessionCompleted) Key() string  { return e.BookingID }
