package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nestling/config"
	otelMocks "nestling/infras/otel/mocks"
	s3Mocks "nestling/infras/s3/mocks"
	bookingModel "nestling/internal/domains/booking/model"
	bookingRepository "nestling/internal/domains/booking/repository"
	"nestling/internal/domains/session/model"
	"nestling/internal/domains/session/model/dto"
	sessionRepository "nestling/internal/domains/session/repository"
	"nestling/internal/domains/session/service"
	"nestling/shared/cache"
	cacheMocks "nestling/shared/cache/mocks"
	"nestling/shared/event"
	"nestling/shared/lock"
	"nestling/shared/money"
)

// TestSessionLifecycle walks a confirmed booking through start, check-in,
// overtime, check-out and completion against the in-memory backends.
func TestSessionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	cacheMock := cacheMocks.NewMockRedisCache(ctrl)
	cacheMock.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	photoStore := s3Mocks.NewMockS3(ctrl)
	photoStore.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://cdn.example.com/parent-photos/photo.jpg", nil)

	start := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	customer, err := bookingModel.NewCustomerInfo("Sarah Johnson", "sarah@example.com", "+1-555-0101", "Mike Johnson +1-555-0102")
	require.NoError(t, err)
	child, err := bookingModel.NewChildInfo("Emma Johnson", 4, "", "Nuts", "Sarah Johnson", "")
	require.NoError(t, err)

	total, err := money.New(decimal.RequireFromString("120.00"), "USD")
	require.NoError(t, err)

	booking, _, err := bookingModel.NewBooking(
		"franchise-1", start, start.Add(8*time.Hour), customer, child, total,
	)
	require.NoError(t, err)

	payment, err := bookingModel.NewPayment(booking.ID, booking.Total(), bookingModel.PaymentMethodCreditCard, "proc_"+booking.ID)
	require.NoError(t, err)
	payment.MarkCompleted()
	_, err = booking.RecordPayment(&payment)
	require.NoError(t, err)

	bookingRepo := bookingRepository.NewMemory()
	require.NoError(t, bookingRepo.Insert(ctx, booking))

	eventLog := event.NewLog()
	svc := service.New(
		sessionRepository.NewMemory(),
		bookingRepo,
		eventLog,
		photoStore,
		lock.NewKeyedMutex(),
		&config.Config{},
		cacheMock,
		otelMocks.NewOtel(),
	)

	started, err := svc.Start(ctx, dto.StartSessionRequest{
		QRToken:       booking.QRToken,
		StaffMemberID: "staff-42",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, started.BookingID)
	assert.Equal(t, string(model.SessionStatusStarted), started.Status)

	checkedIn, err := svc.CheckIn(ctx, started.ID, dto.CheckInRequest{
		PhotoData: "cGFyZW50LXBob3Rv",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCheckedIn), checkedIn.Status)
	assert.NotEmpty(t, checkedIn.CheckInTime)
	assert.NotEmpty(t, checkedIn.PhotoArtifactRef)

	overtime, err := svc.ApplyOvertime(ctx, started.ID, dto.ApplyOvertimeRequest{
		OvertimeMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, overtime.Charges, 1)
	assert.True(t, overtime.TotalCharges.Equal(decimal.RequireFromString("30.00")),
		"expected 30.00 of overtime, got %s", overtime.TotalCharges)

	checkedOut, err := svc.CheckOut(ctx, started.ID, dto.CheckOutRequest{
		Notes: "Emma had a great day",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCheckedOut), checkedOut.Status)
	assert.Equal(t, "Emma had a great day", checkedOut.Notes)

	completed, err := svc.Complete(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.SessionStatusCompleted), completed.Status)

	assert.Equal(t, []string{
		model.EventKindSessionStarted,
		model.EventKindChildCheckedIn,
		model.EventKindOvertimeChargeApplied,
		model.EventKindChildCheckedOut,
		model.EventKindSessionCompleted,
	}, eventLog.Kinds())

	events := eventLog.All()

	checkInEvent, ok := events[1].(model.ChildCheckedIn)
	require.True(t, ok)
	assert.Equal(t, "Emma Johnson", checkInEvent.ChildName)
	assert.Equal(t, "staff-42", checkInEvent.StaffMemberID)

	completedEvent, ok := events[len(events)-1].(model.SessionCompleted)
	require.True(t, ok)
	assert.Equal(t, booking.ID, completedEvent.Key())
	assert.True(t, completedEvent.TotalAmount.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, completedEvent.AllPaymentsSettled)
}
