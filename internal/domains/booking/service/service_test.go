package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nestling/config"
	otelMocks "nestling/infras/otel/mocks"
	bookingMocks "nestling/internal/domains/booking/mocks"
	"nestling/internal/domains/booking/model"
	"nestling/internal/domains/booking/model/dto"
	"nestling/internal/domains/booking/service"
	franchiseMocks "nestling/internal/domains/franchise/mocks"
	franchiseModel "nestling/internal/domains/franchise/model"
	cacheMocks "nestling/shared/cache/mocks"
	eventMocks "nestling/shared/event/mocks"
	"nestling/shared/failure"
	"nestling/shared/lock"
	"nestling/shared/money"
)

type serviceFixture struct {
	repo          *bookingMocks.MockBooking
	paymentRepo   *bookingMocks.MockPayment
	franchiseRepo *franchiseMocks.MockFranchise
	publisher     *eventMocks.MockPublisher
	cache         *cacheMocks.MockRedisCache
	svc           service.Booking
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		repo:          bookingMocks.NewMockBooking(ctrl),
		paymentRepo:   bookingMocks.NewMockPayment(ctrl),
		franchiseRepo: franchiseMocks.NewMockFranchise(ctrl),
		publisher:     eventMocks.NewMockPublisher(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(
		f.repo,
		f.paymentRepo,
		f.franchiseRepo,
		f.publisher,
		lock.NewKeyedMutex(),
		cfg,
		f.cache,
		otelMocks.NewOtel(),
	)

	return f
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		FranchiseID:   "franchise-1",
		StartDatetime: "2026-09-07T09:00:00Z",
		EndDatetime:   "2026-09-07T15:00:00Z",
		CustomerInfo: dto.CustomerInfoRequest{
			Name:  "Sarah Johnson",
			Email: "sarah@example.com",
			Phone: "+1-555-0101",
		},
		ChildInfo: dto.ChildInfoRequest{
			Name: "Emma Johnson",
			Age:  4,
		},
	}
}

func pendingBooking(t *testing.T) model.Booking {
	t.Helper()

	total, err := money.New(decimal.RequireFromString("72.00"), "USD")
	require.NoError(t, err)

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	customer, err := model.NewCustomerInfo("Sarah Johnson", "sarah@example.com", "+1-555-0101", "")
	require.NoError(t, err)

	child, err := model.NewChildInfo("Emma Johnson", 4, "", "", "", "")
	require.NoError(t, err)

	booking, _, err := model.NewBooking("franchise-1", start, start.Add(6*time.Hour), customer, child, total)
	require.NoError(t, err)

	return booking
}

func TestBookingService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.franchiseRepo.EXPECT().
			Get(gomock.Any(), "franchise-1").
			Return(rateCard("12.00", "18.00"), nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), "franchise-1", gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		f.publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(nil)
		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Create(context.Background(), createRequest())
		require.NoError(t, err)

		assert.Equal(t, string(model.BookingStatusPending), res.BookingStatus)
		assert.Equal(t, string(model.PaymentStatusPending), res.PaymentStatus)
		// 6 hours at the 12.00 standard rate.
		assert.True(t, res.TotalAmount.Equal(decimal.RequireFromString("72.00")), "got %s", res.TotalAmount)
		assert.NotEmpty(t, res.QRToken)
	})

	t.Run("franchise not found", func(t *testing.T) {
		f := newFixture(t)

		f.franchiseRepo.EXPECT().
			Get(gomock.Any(), "franchise-1").
			Return(franchiseModel.Franchise{}, nil)

		_, err := f.svc.Create(context.Background(), createRequest())
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("invalid datetime", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.StartDatetime = "tomorrow-ish"

		_, err := f.svc.Create(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("at capacity", func(t *testing.T) {
		f := newFixture(t)

		franchise := rateCard("12.00", "18.00")
		franchise.MaxCapacity = 1

		f.franchiseRepo.EXPECT().
			Get(gomock.Any(), "franchise-1").
			Return(franchise, nil)
		f.repo.EXPECT().
			FindOverlapping(gomock.Any(), "franchise-1", gomock.Any(), gomock.Any()).
			Return([]model.Booking{pendingBooking(t)}, nil)

		_, err := f.svc.Create(context.Background(), createRequest())
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.franchiseRepo.EXPECT().
			Get(gomock.Any(), "franchise-1").
			Return(franchiseModel.Franchise{}, errors.New("database error"))

		_, err := f.svc.Create(context.Background(), createRequest())
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_ProcessPayment(t *testing.T) {
	req := dto.ProcessPaymentRequest{PaymentMethod: "CREDIT_CARD"}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		booking := pendingBooking(t)

		f.repo.EXPECT().
			Get(gomock.Any(), booking.ID).
			Return(booking, nil)
		f.paymentRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)
		f.publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(nil)
		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.ProcessPayment(context.Background(), booking.ID, req)
		require.NoError(t, err)

		assert.Equal(t, string(model.BookingStatusConfirmed), res.Booking.BookingStatus)
		assert.Equal(t, string(model.PaymentStatusPaid), res.Booking.PaymentStatus)
		assert.Equal(t, string(model.PaymentStateCompleted), res.Payment.Status)
		assert.Equal(t, "proc_"+booking.ID, res.Payment.ProcessorRef)
		assert.True(t, res.Payment.Amount.Equal(booking.TotalAmount))
	})

	t.Run("already paid", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking(t)
		booking.BookingStatus = model.BookingStatusConfirmed
		booking.PaymentStatus = model.PaymentStatusPaid

		f.repo.EXPECT().
			Get(gomock.Any(), booking.ID).
			Return(booking, nil)

		_, err := f.svc.ProcessPayment(context.Background(), booking.ID, req)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), "missing").
			Return(model.Booking{}, nil)

		_, err := f.svc.ProcessPayment(context.Background(), "missing", req)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	req := dto.CancelBookingRequest{Reason: "Customer request"}

	t.Run("refunds completed payments", func(t *testing.T) {
		f := newFixture(t)
		booking := pendingBooking(t)

		payment, err := model.NewPayment(booking.ID, booking.Total(), model.PaymentMethodCreditCard, "proc_"+booking.ID)
		require.NoError(t, err)
		payment.MarkCompleted()

		pending, err := model.NewPayment(booking.ID, booking.Total(), model.PaymentMethodCreditCard, "proc_"+booking.ID)
		require.NoError(t, err)

		f.repo.EXPECT().
			Get(gomock.Any(), booking.ID).
			Return(booking, nil)
		f.paymentRepo.EXPECT().
			FindByBooking(gomock.Any(), booking.ID).
			Return([]model.Payment{payment, pending}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)
		f.publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(nil)
		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Cancel(context.Background(), booking.ID, req)
		require.NoError(t, err)

		assert.Equal(t, string(model.BookingStatusCancelled), res.Booking.BookingStatus)
		// Only the completed payment counts toward the refund.
		assert.True(t, res.RefundAmount.Equal(decimal.RequireFromString("72.00")), "got %s", res.RefundAmount)
	})

	t.Run("no payments yields zero refund", func(t *testing.T) {
		f := newFixture(t)
		booking := pendingBooking(t)

		f.repo.EXPECT().
			Get(gomock.Any(), booking.ID).
			Return(booking, nil)
		f.paymentRepo.EXPECT().
			FindByBooking(gomock.Any(), booking.ID).
			Return(nil, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)
		f.publisher.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(nil)
		f.cache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.Cancel(context.Background(), booking.ID, req)
		require.NoError(t, err)

		assert.True(t, res.RefundAmount.IsZero())
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking(t)
		booking.BookingStatus = model.BookingStatusCancelled

		f.repo.EXPECT().
			Get(gomock.Any(), booking.ID).
			Return(booking, nil)
		f.paymentRepo.EXPECT().
			FindByBooking(gomock.Any(), booking.ID).
			Return(nil, nil)

		_, err := f.svc.Cancel(context.Background(), booking.ID, req)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}
