package model

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestling/shared/constant"
	"nestling/shared/event"
	"nestling/shared/failure"
	"nestling/shared/model"
	"nestling/shared/money"
	"nestling/shared/timezone"
)

const (
	TableName       = "booking_sessions"
	ChargeTableName = "session_charges"
	EntityName      = "session"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldStatus    = "status"
)

type SessionStatus string

const (
	SessionStatusStarted    SessionStatus = "STARTED"
	SessionStatusCheckedIn  SessionStatus = "CHECKED_IN"
	SessionStatusCheckedOut SessionStatus = "CHECKED_OUT"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// BookingSession is the supervised on-site episode for a confirmed booking,
// started by staff scanning the booking QR token. The status walks strictly
// forward, COMPLETED is terminal. The photo and notes value objects are
// flattened onto the row; the photo's staff and capture time coincide with
// the session staff and check-in time, likewise notes with check-out.
type BookingSession struct {
	ID               string         `db:"id"                 json:"id"`
	BookingID        string         `db:"booking_id"         json:"booking_id"`
	StaffMemberID    string         `db:"staff_member_id"    json:"staff_member_id"`
	Status           SessionStatus  `db:"status"             json:"status"`
	CheckInTime      sql.NullTime   `db:"check_in_time"      json:"check_in_time"`
	CheckOutTime     sql.NullTime   `db:"check_out_time"     json:"check_out_time"`
	PhotoArtifactRef sql.NullString `db:"photo_artifact_ref" json:"photo_artifact_ref"`
	Notes            sql.NullString `db:"notes"              json:"notes"`

	Charges []AdditionalCharge `db:"-" json:"charges"`

	model.Metadata
}

// NewSession opens a STARTED session for the booking. The QR token has
// already been resolved by the caller; it rides along on the event for audit.
func NewSession(bookingID, staffMemberID, qrToken string) (BookingSession, event.Event, error) {
	if bookingID == constant.Empty {
		return BookingSession{}, nil, failure.Validation("booking id is required")
	}

	if staffMemberID == constant.Empty {
		return BookingSession{}, nil, failure.Validation("staff member id is required")
	}

	now := timezone.Now()

	session := BookingSession{
		ID:            uuid.NewString(),
		BookingID:     bookingID,
		StaffMemberID: staffMemberID,
		Status:        SessionStatusStarted,
	}
	session.CreatedAt = now
	session.ModifiedAt = now

	started := SessionStarted{
		Envelope:      event.NewEnvelope(),
		SessionID:     session.ID,
		BookingID:     bookingID,
		StaffMemberID: staffMemberID,
		QRTokenUsed:   qrToken,
	}

	return session, started, nil
}

// IsActive reports whether the session still holds the booking's slot.
func (s *BookingSession) IsActive() bool {
	return s.Status == SessionStatusStarted || s.Status == SessionStatusCheckedIn
}

// CheckIn records the arrival time and the captured parent photo. The child
// name is resolved from the booking by the caller and only travels on the
// event.
func (s *BookingSession) CheckIn(photo ParentPhoto, childName string) (event.Event, error) {
	if s.Status != SessionStatusStarted {
		return nil, failure.IllegalTransition("session can only check in from STARTED")
	}

	s.Status = SessionStatusCheckedIn
	s.CheckInTime = sql.NullTime{Time: photo.CapturedAt, Valid: true}
	s.PhotoArtifactRef = sql.NullString{String: photo.ArtifactRef, Valid: true}
	s.ModifiedAt = timezone.Now()

	return ChildCheckedIn{
		Envelope:      event.NewEnvelope(),
		SessionID:     s.ID,
		BookingID:     s.BookingID,
		ChildName:     childName,
		CheckInTime:   s.CheckInTime.Time,
		StaffMemberID: s.StaffMemberID,
	}, nil
}

// ApplyCharge appends a charge in any state before COMPLETED. Overtime
// charges get their dedicated event kind, everything else the generic one.
func (s *BookingSession) ApplyCharge(charge AdditionalCharge) (event.Event, error) {
	if s.Status == SessionStatusCompleted {
		return nil, failure.IllegalTransition("session is already completed")
	}

	charge.SessionID = s.ID
	s.Charges = append(s.Charges, charge)
	s.ModifiedAt = timezone.Now()

	if charge.Kind == ChargeKindOvertime {
		return OvertimeChargeApplied{
			Envelope:        event.NewEnvelope(),
			SessionID:       s.ID,
			BookingID:       s.BookingID,
			OvertimeMinutes: charge.OvertimeMinutes,
			ChargeAmount:    charge.Amount,
			Currency:        charge.Currency,
			StaffMemberID:   s.StaffMemberID,
		}, nil
	}

	return ChargeApplied{
		Envelope:      event.NewEnvelope(),
		SessionID:     s.ID,
		BookingID:     s.BookingID,
		ChargeKind:    charge.Kind,
		ChargeAmount:  charge.Amount,
		Currency:      charge.Currency,
		Description:   charge.Description,
		StaffMemberID: s.StaffMemberID,
	}, nil
}

// CheckOut records the departure time and the staff notes. Duration is whole
// minutes, floored, zero when the check-in timestamp is missing.
func (s *BookingSession) CheckOut(notes SessionNotes) (event.Event, error) {
	if s.Status != SessionStatusCheckedIn {
		return nil, failure.IllegalTransition("session can only check out from CHECKED_IN")
	}

	s.Status = SessionStatusCheckedOut
	s.CheckOutTime = sql.NullTime{Time: notes.CreatedAt, Valid: true}
	s.Notes = sql.NullString{String: notes.Content, Valid: true}
	s.ModifiedAt = timezone.Now()

	duration := 0
	if s.CheckInTime.Valid {
		duration = int(s.CheckOutTime.Time.Sub(s.CheckInTime.Time).Seconds()) / constant.SecondsPerMinute
	}

	return ChildCheckedOut{
		Envelope:             event.NewEnvelope(),
		SessionID:            s.ID,
		BookingID:            s.BookingID,
		CheckOutTime:         s.CheckOutTime.Time,
		TotalDurationMinutes: duration,
		StaffMemberID:        s.StaffMemberID,
	}, nil
}

// Complete closes the session and totals all applied charges. Settlement
// verification belongs to the external billing collaborator, so the settled
// flag is always true here.
func (s *BookingSession) Complete() (event.Event, error) {
	if s.Status != SessionStatusCheckedOut {
		return nil, failure.IllegalTransition("session can only complete from CHECKED_OUT")
	}

	s.Status = SessionStatusCompleted
	s.ModifiedAt = timezone.Now()

	total := s.TotalCharges()

	return SessionCompleted{
		Envelope:           event.NewEnvelope(),
		SessionID:          s.ID,
		BookingID:          s.BookingID,
		TotalAmount:        total.Amount,
		Currency:           total.Currency,
		AllPaymentsSettled: true,
	}, nil
}

// TotalCharges sums every applied charge.
func (s *BookingSession) TotalCharges() money.Money {
	total := decimal.Zero
	for _, charge := range s.Charges {
		total = total.Add(charge.Amount)
	}

	return money.Money{Amount: total, Currency: constant.DefaultCurrency}
}
