package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lib/pq"
	"go.uber.org/mock/gomock"

	"nestling/config"
	otelMocks "nestling/infras/otel/mocks"
	"nestling/internal/domains/booking/model"
	"nestling/internal/domains/booking/model/dto"
	bookingRepository "nestling/internal/domains/booking/repository"
	"nestling/internal/domains/booking/service"
	franchiseModel "nestling/internal/domains/franchise/model"
	franchiseRepository "nestling/internal/domains/franchise/repository"
	"nestling/shared/cache"
	cacheMocks "nestling/shared/cache/mocks"
	"nestling/shared/event"
	"nestling/shared/failure"
	"nestling/shared/lock"
)

// TestBookingLifecycle drives create, payment and cancellation through the
// in-memory backends end to end and checks the emitted event stream.
func TestBookingLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	cacheMock := cacheMocks.NewMockRedisCache(ctrl)
	cacheMock.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	franchiseRepo := franchiseRepository.NewMemory()
	require.NoError(t, franchiseRepo.Insert(ctx, franchiseModel.Franchise{
		ID:            "franchise-little-angels",
		Name:          "Little Angels Care",
		Address:       "789 Pine Rd",
		City:          "Vancouver",
		PostalCode:    "V6B 1A1",
		MaxCapacity:   12,
		StandardRate:  decimal.RequireFromString("15.00"),
		PeakHourRate:  decimal.RequireFromString("22.50"),
		OpenTime:      "08:00",
		CloseTime:     "17:00",
		OperatingDays: pq.Int64Array{1, 2, 3, 4, 5},
		IsActive:      true,
	}))

	eventLog := event.NewLog()
	svc := service.New(
		bookingRepository.NewMemory(),
		bookingRepository.NewPaymentMemory(),
		franchiseRepo,
		eventLog,
		lock.NewKeyedMutex(),
		&config.Config{},
		cacheMock,
		otelMocks.NewOtel(),
	)

	created, err := svc.Create(ctx, dto.CreateBookingRequest{
		FranchiseID:   "franchise-little-angels",
		StartDatetime: "2026-09-07T08:00:00Z",
		EndDatetime:   "2026-09-07T16:00:00Z",
		CustomerInfo: dto.CustomerInfoRequest{
			Name:             "Maria Rodriguez",
			Email:            "maria@example.com",
			Phone:            "+1-555-0301",
			EmergencyContact: "Carlos Rodriguez +1-555-0302",
		},
		ChildInfo: dto.ChildInfoRequest{
			Name:      "Sofia Rodriguez",
			Age:       3,
			Allergies: "Dairy",
		},
	})
	require.NoError(t, err)

	// Eight non-peak hours at the 15.00 standard rate.
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("120.00")),
		"expected 120.00, got %s", created.TotalAmount)
	assert.Equal(t, string(model.BookingStatusPending), created.BookingStatus)
	assert.Equal(t, string(model.PaymentStatusPending), created.PaymentStatus)
	assert.NotEmpty(t, created.QRToken)

	paid, err := svc.ProcessPayment(ctx, created.ID, dto.ProcessPaymentRequest{
		PaymentMethod: string(model.PaymentMethodCreditCard),
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.BookingStatusConfirmed), paid.Booking.BookingStatus)
	assert.Equal(t, string(model.PaymentStatusPaid), paid.Booking.PaymentStatus)
	assert.True(t, paid.Payment.Amount.Equal(created.TotalAmount))

	// Double payment is rejected once the booking is paid.
	_, err = svc.ProcessPayment(ctx, created.ID, dto.ProcessPaymentRequest{
		PaymentMethod: string(model.PaymentMethodCreditCard),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

	cancelled, err := svc.Cancel(ctx, created.ID, dto.CancelBookingRequest{
		Reason: "family emergency",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.BookingStatusCancelled), cancelled.Booking.BookingStatus)
	assert.True(t, cancelled.RefundAmount.Equal(decimal.RequireFromString("120.00")),
		"expected full refund, got %s", cancelled.RefundAmount)
	// Settlement of the refund happens outside; the paid marker stays.
	assert.Equal(t, string(model.PaymentStatusPaid), cancelled.Booking.PaymentStatus)

	assert.Equal(t, []string{
		model.EventKindBookingCreated,
		model.EventKindPaymentProcessed,
		model.EventKindBookingCancelled,
	}, eventLog.Kinds())

	events := eventLog.All()
	last, ok := events[len(events)-1].(model.BookingCancelled)
	require.True(t, ok)
	assert.Equal(t, created.ID, last.Key())
	assert.Equal(t, "family emergency", last.CancellationReason)
	assert.True(t, last.RefundAmount.Equal(decimal.RequireFromString("120.00")))
}
