package model_test

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestling/internal/domains/session/model"
	"nestling/shared/failure"
)

func startedSession(t *testing.T) model.BookingSession {
	t.Helper()

	session, started, err := model.NewSession("booking-1", "staff-1", "qr-token")
	require.NoError(t, err)
	require.Equal(t, model.EventKindSessionStarted, started.Kind())

	return session
}

func checkedInSession(t *testing.T) model.BookingSession {
	t.Helper()

	session := startedSession(t)

	photo, err := model.NewParentPhoto("https://cdn.example.com/photos/p1.jpg", "staff-1")
	require.NoError(t, err)

	_, err = session.CheckIn(photo, "Emma Johnson")
	require.NoError(t, err)

	return session
}

func TestNewSession_Validation(t *testing.T) {
	_, _, err := model.NewSession("", "staff-1", "qr")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, _, err = model.NewSession("booking-1", "", "qr")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestCheckIn(t *testing.T) {
	session := startedSession(t)

	photo, err := model.NewParentPhoto("https://cdn.example.com/photos/p1.jpg", "staff-1")
	require.NoError(t, err)

	evt, err := session.CheckIn(photo, "Emma Johnson")
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCheckedIn, session.Status)
	assert.True(t, session.CheckInTime.Valid)
	assert.Equal(t, photo.ArtifactRef, session.PhotoArtifactRef.String)

	checkedIn, ok := evt.(model.ChildCheckedIn)
	require.True(t, ok)
	assert.Equal(t, "Emma Johnson", checkedIn.ChildName)
}

func TestCheckIn_OnlyFromStarted(t *testing.T) {
	session := checkedInSession(t)

	photo, err := model.NewParentPhoto("https://cdn.example.com/photos/p2.jpg", "staff-1")
	require.NoError(t, err)

	_, err = session.CheckIn(photo, "Emma Johnson")
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestApplyCharge(t *testing.T) {
	t.Run("overtime charges accumulate", func(t *testing.T) {
		session := checkedInSession(t)

		first, err := model.NewOvertimeCharge(session.ID, 30)
		require.NoError(t, err)

		evt, err := session.ApplyCharge(first)
		require.NoError(t, err)

		overtime, ok := evt.(model.OvertimeChargeApplied)
		require.True(t, ok)
		assert.Equal(t, 30, overtime.OvertimeMinutes)
		assert.True(t, overtime.ChargeAmount.Equal(decimal.NewFromInt(30)))

		second, err := model.NewOvertimeCharge(session.ID, 15)
		require.NoError(t, err)

		_, err = session.ApplyCharge(second)
		require.NoError(t, err)

		assert.Len(t, session.Charges, 2)
		assert.True(t, session.TotalCharges().Amount.Equal(decimal.NewFromInt(45)))
	})

	t.Run("generic charge emits generic event", func(t *testing.T) {
		session := startedSession(t)

		charge, err := model.NewAdditionalCharge(session.ID, "extras", decimal.RequireFromString("5.50"), "snack pack")
		require.NoError(t, err)

		evt, err := session.ApplyCharge(charge)
		require.NoError(t, err)

		applied, ok := evt.(model.ChargeApplied)
		require.True(t, ok)
		assert.Equal(t, "extras", applied.ChargeKind)
	})

	t.Run("legal before completion in every state", func(t *testing.T) {
		session := checkedInSession(t)

		_, err := session.CheckOut(model.NewSessionNotes("fine day", "staff-1"))
		require.NoError(t, err)

		charge, err := model.NewOvertimeCharge(session.ID, 10)
		require.NoError(t, err)

		_, err = session.ApplyCharge(charge)
		assert.NoError(t, err)
	})

	t.Run("illegal after completion", func(t *testing.T) {
		session := checkedInSession(t)

		_, err := session.CheckOut(model.NewSessionNotes("fine day", "staff-1"))
		require.NoError(t, err)

		_, err = session.Complete()
		require.NoError(t, err)

		charge, err := model.NewOvertimeCharge(session.ID, 10)
		require.NoError(t, err)

		_, err = session.ApplyCharge(charge)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestNewOvertimeCharge_Validation(t *testing.T) {
	_, err := model.NewOvertimeCharge("session-1", 0)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = model.NewOvertimeCharge("session-1", -5)
	assert.Error(t, err)
}

func TestCheckOut(t *testing.T) {
	session := checkedInSession(t)
	session.CheckInTime = sql.NullTime{Time: session.CheckInTime.Time.Add(-90 * time.Minute), Valid: true}

	evt, err := session.CheckOut(model.NewSessionNotes("Great behavior today", "staff-1"))
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCheckedOut, session.Status)
	assert.True(t, session.CheckOutTime.Valid)
	assert.Equal(t, "Great behavior today", session.Notes.String)

	checkedOut, ok := evt.(model.ChildCheckedOut)
	require.True(t, ok)
	assert.Equal(t, 90, checkedOut.TotalDurationMinutes)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	session := startedSession(t)

	_, err := session.CheckOut(model.NewSessionNotes("too early", "staff-1"))
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestComplete(t *testing.T) {
	session := checkedInSession(t)

	charge, err := model.NewOvertimeCharge(session.ID, 30)
	require.NoError(t, err)

	_, err = session.ApplyCharge(charge)
	require.NoError(t, err)

	_, err = session.CheckOut(model.NewSessionNotes("all good", "staff-1"))
	require.NoError(t, err)

	evt, err := session.Complete()
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCompleted, session.Status)
	assert.False(t, session.IsActive())

	completed, ok := evt.(model.SessionCompleted)
	require.True(t, ok)
	assert.True(t, completed.TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, completed.AllPaymentsSettled)
}

func TestComplete_BeforeCheckOut(t *testing.T) {
	session := checkedInSession(t)

	_, err := session.Complete()
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestIsActive(t *testing.T) {
	session := startedSession(t)
	assert.True(t, session.IsActive())

	checkedIn := checkedInSession(t)
	assert.True(t, checkedIn.IsActive())

	_, err := checkedIn.CheckOut(model.NewSessionNotes("", "staff-1"))
	require.NoError(t, err)
	assert.False(t, checkedIn.IsActive())
}
