package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"nestling/internal/domains/session/model"
)

type StartSessionRequest struct {
	QRToken       string `json:"qr_token"        validate:"required"`
	StaffMemberID string `json:"staff_member_id" validate:"required"`
}

type CheckInRequest struct {
	// PhotoData carries the parent photo as a base64 payload, optionally
	// with a data-URI prefix.
	PhotoData string `json:"photo_data" validate:"required"`
}

type ApplyOvertimeRequest struct {
	OvertimeMinutes int `json:"overtime_minutes" validate:"required,gt=0"`
}

type CheckOutRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

type ChargeResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	OvertimeMinutes int             `json:"overtime_minutes,omitempty"`
	AppliedAt       string          `json:"applied_at"`
}

func (r *ChargeResponse) FromModel(charge model.AdditionalCharge) {
	r.ID = charge.ID
	r.Kind = charge.Kind
	r.Amount = charge.Amount
	r.Currency = charge.Currency
	r.Description = charge.Description
	r.OvertimeMinutes = charge.OvertimeMinutes
	r.AppliedAt = charge.AppliedAt.Format(time.RFC3339)
}

type SessionResponse struct {
	ID               string           `json:"id"`
	BookingID        string           `json:"booking_id"`
	StaffMemberID    string           `json:"staff_member_id"`
	Status           string           `json:"status"`
	CheckInTime      string           `json:"check_in_time,omitempty"`
	CheckOutTime     string           `json:"check_out_time,omitempty"`
	PhotoArtifactRef string           `json:"photo_artifact_ref,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Charges          []ChargeResponse `json:"charges"`
	TotalCharges     decimal.Decimal  `json:"total_charges"`
	Currency         string           `json:"currency"`
	PaymentQRToken   string           `json:"payment_qr_token,omitempty"`
}

func (r *SessionResponse) FromModel(session model.BookingSession) {
	r.ID = session.ID
	r.BookingID = session.BookingID
	r.StaffMemberID = session.StaffMemberID
	r.Status = string(session.Status)

	if session.CheckInTime.Valid {
		r.CheckInTime = session.CheckInTime.Time.Format(time.RFC3339)
	}

	if session.CheckOutTime.Valid {
		r.CheckOutTime = session.CheckOutTime.Time.Format(time.RFC3339)
	}

	if session.PhotoArtifactRef.Valid {
		r.PhotoArtifactRef = session.PhotoArtifactRef.String
	}

	if session.Notes.Valid {
		r.Notes = session.Notes.String
	}

	r.Charges = make([]ChargeResponse, 0, len(session.Charges))
	for _, charge := range session.Charges {
		res := ChargeResponse{}
		res.FromModel(charge)
		r.Charges = append(r.Charges, res)
	}

	total := session.TotalCharges()
	r.TotalCharges = total.Amount
	r.Currency = total.Currency
}

type GetSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

func (r *GetSessionsResponse) FromModels(sessions []model.BookingSession) {
	r.Sessions = make([]SessionResponse, 0, len(sessions))

	for _, session := range sessions {
		res := SessionResponse{}
		res.FromModel(session)
		r.Sessions = append(r.Sessions, res)
	}

	r.Total = len(sessions)
}
