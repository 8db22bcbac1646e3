package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nestling/config"
	"nestling/infras/otel"
	"nestling/internal/domains/booking/model"
	"nestling/internal/domains/booking/model/dto"
	"nestling/internal/domains/booking/repository"
	franchiseRepo "nestling/internal/domains/franchise/repository"
	"nestling/shared"
	"nestling/shared/cache"
	"nestling/shared/constant"
	"nestling/shared/event"
	"nestling/shared/failure"
	"nestling/shared/lock"
	"nestling/shared/money"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	lockFranchisePrefix = "franchise:"
	lockBookingPrefix   = "booking:"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context) (dto.GetBookingsResponse, error)
	ProcessPayment(ctx context.Context, id string, req dto.ProcessPaymentRequest) (dto.ProcessPaymentResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (dto.CancelBookingResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	paymentRepo   repository.Payment
	franchiseRepo franchiseRepo.Franchise
	publisher     event.Publisher
	locks         *lock.KeyedMutex
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Booking,
	paymentRepo repository.Payment,
	franchiseRepo franchiseRepo.Franchise,
	publisher event.Publisher,
	locks *lock.KeyedMutex,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:          repo,
		paymentRepo:   paymentRepo,
		franchiseRepo: franchiseRepo,
		publisher:     publisher,
		locks:         locks,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

// Create prices and persists a new PENDING booking. The franchise lock covers
// the availability read and the insert, so two concurrent requests cannot both
// pass the capacity check.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Window()
	if err != nil {
		return res, failure.Validation(fmt.Sprintf("invalid datetime format: %v", err)) // nolint:wrapcheck
	}

	customer, err := req.Customer()
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	child, err := req.Child()
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	franchise, err := s.franchiseRepo.Get(ctx, req.FranchiseID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get franchise")

		return res, fmt.Errorf("failed to get franchise: %w", err)
	}

	if franchise.ID == constant.Empty {
		return res, failure.NotFound("franchise not found") // nolint:wrapcheck
	}

	s.locks.Lock(lockFranchisePrefix + franchise.ID)
	defer s.locks.Unlock(lockFranchisePrefix + franchise.ID)

	overlapping, err := s.repo.FindOverlapping(ctx, franchise.ID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return res, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	if err = CheckAvailability(franchise, overlapping, start, end); err != nil {
		return res, err // nolint:wrapcheck
	}

	total, err := CalculateCost(franchise, start, end)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	booking, created, err := model.NewBooking(franchise.ID, start, end, customer, child, total)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.publish(ctx, created)
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllBooking)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// ProcessPayment settles the booking total through the simulated processor
// and confirms the booking. The payment row is persisted only after the
// booking transition succeeds, so an unpayable booking leaves no trace.
func (s *serviceImpl) ProcessPayment(ctx context.Context, id string, req dto.ProcessPaymentRequest) (res dto.ProcessPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ProcessPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockBookingPrefix + id)
	defer s.locks.Unlock(lockBookingPrefix + id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	payment, err := model.NewPayment(booking.ID, booking.Total(), model.PaymentMethod(req.PaymentMethod), "proc_"+booking.ID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	// The external gateway is out of scope, every attempt settles.
	payment.MarkCompleted()

	processed, err := booking.RecordPayment(&payment)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.paymentRepo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to insert payment")

		return res, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err = s.repo.Update(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	s.publish(ctx, processed)
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)

	res.Booking.FromModel(booking)
	res.Payment.FromModel(payment)

	return res, nil
}

// Cancel marks the booking CANCELLED and reports the refundable amount, the
// sum of every completed payment. Executing the refund belongs to the
// settlement workflow listening on BookingCancelled; payment status is left
// as is.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (res dto.CancelBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockBookingPrefix + id)
	defer s.locks.Unlock(lockBookingPrefix + id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	payments, err := s.paymentRepo.FindByBooking(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find payments")

		return res, fmt.Errorf("failed to find payments: %w", err)
	}

	refund := money.Zero(booking.Currency)

	for _, payment := range payments {
		if payment.Status != model.PaymentStateCompleted {
			continue
		}

		refund, err = refund.Add(payment.AmountMoney())
		if err != nil {
			return res, fmt.Errorf("failed to total refund: %w", err)
		}
	}

	cancelled, err := booking.Cancel(req.Reason, refund)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	s.publish(ctx, cancelled)
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)

	res.Booking.FromModel(booking)
	res.RefundAmount = refund.Amount
	res.Currency = refund.Currency

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return model.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// publish hands events to the sink after the state change is committed.
// Failures are logged and swallowed, the booking stays committed.
func (s *serviceImpl) publish(ctx context.Context, events ...event.Event) {
	if err := s.publisher.Publish(ctx, events...); err != nil {
		log.Error().Err(err).Msg("failed to publish domain events")
	}
}
