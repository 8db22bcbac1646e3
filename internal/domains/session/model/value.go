package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestling/shared/constant"
	"nestling/shared/failure"
	"nestling/shared/timezone"
)

const ChargeKindOvertime = "overtime"

// overtimeRatePerMinute is the flat reference rate. Franchise-specific rates
// are the caller's job, passed through the generic charge path.
var overtimeRatePerMinute = decimal.NewFromInt(1)

// ParentPhoto is the artifact captured at check-in, stored by reference.
type ParentPhoto struct {
	ArtifactRef   string    `json:"artifact_ref"`
	CapturedAt    time.Time `json:"captured_at"`
	StaffMemberID string    `json:"staff_member_id"`
}

func NewParentPhoto(artifactRef, staffMemberID string) (ParentPhoto, error) {
	if artifactRef == constant.Empty {
		return ParentPhoto{}, failure.Validation("photo artifact reference is required")
	}

	return ParentPhoto{
		ArtifactRef:   artifactRef,
		CapturedAt:    timezone.Now(),
		StaffMemberID: staffMemberID,
	}, nil
}

// SessionNotes are written by staff at check-out.
type SessionNotes struct {
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSessionNotes(content, createdBy string) SessionNotes {
	return SessionNotes{
		Content:   content,
		CreatedBy: createdBy,
		CreatedAt: timezone.Now(),
	}
}

// AdditionalCharge is appended to a session and never edited afterwards.
type AdditionalCharge struct {
	ID              string          `db:"id"               json:"id"`
	SessionID       string          `db:"session_id"       json:"session_id"`
	Kind            string          `db:"kind"             json:"kind"`
	Amount          decimal.Decimal `db:"amount"           json:"amount"`
	Currency        string          `db:"currency"         json:"currency"`
	Description     string          `db:"description"      json:"description"`
	OvertimeMinutes int             `db:"overtime_minutes" json:"overtime_minutes,omitempty"`
	AppliedAt       time.Time       `db:"applied_at"       json:"applied_at"`
}

func NewAdditionalCharge(sessionID, kind string, amount decimal.Decimal, description string) (AdditionalCharge, error) {
	if kind == constant.Empty {
		return AdditionalCharge{}, failure.Validation("charge kind is required")
	}

	if amount.IsNegative() {
		return AdditionalCharge{}, failure.Validation("charge amount must be non-negative")
	}

	return AdditionalCharge{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Kind:        kind,
		Amount:      amount,
		Currency:    constant.DefaultCurrency,
		Description: description,
		AppliedAt:   timezone.Now(),
	}, nil
}

// NewOvertimeCharge prices overtime at the flat per-minute rate.
func NewOvertimeCharge(sessionID string, minutes int) (AdditionalCharge, error) {
	if minutes <= 0 {
		return AdditionalCharge{}, failure.Validation("overtime minutes must be positive")
	}

	amount := overtimeRatePerMinute.Mul(decimal.NewFromInt(int64(minutes)))

	charge, err := NewAdditionalCharge(sessionID, ChargeKindOvertime, amount, fmt.Sprintf("%d minutes overtime", minutes))
	if err != nil {
		return AdditionalCharge{}, err
	}

	charge.OvertimeMinutes = minutes

	return charge, nil
}
