package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nestling/config"
	"nestling/infras/otel"
	"nestling/infras/s3"
	bookingRepo "nestling/internal/domains/booking/repository"
	"nestling/internal/domains/session/model"
	"nestling/internal/domains/session/model/dto"
	"nestling/internal/domains/session/repository"
	"nestling/shared"
	"nestling/shared/base64"
	"nestling/shared/cache"
	"nestling/shared/constant"
	"nestling/shared/event"
	"nestling/shared/failure"
	"nestling/shared/lock"
	"nestling/shared/qrtoken"
)

const (
	cacheGetSession     = "session:get"
	cacheActiveSessions = "session:active"

	lockSessionPrefix = "session:"
	lockBookingPrefix = "booking:"

	// Sentinel child name when the booking lookup misses at check-in.
	unknownChildName = "Unknown"
)

type Session interface {
	Start(ctx context.Context, req dto.StartSessionRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	ListActive(ctx context.Context) (dto.GetSessionsResponse, error)
	CheckIn(ctx context.Context, id string, req dto.CheckInRequest) (dto.SessionResponse, error)
	ApplyOvertime(ctx context.Context, id string, req dto.ApplyOvertimeRequest) (dto.SessionResponse, error)
	CheckOut(ctx context.Context, id string, req dto.CheckOutRequest) (dto.SessionResponse, error)
	Complete(ctx context.Context, id string) (dto.SessionResponse, error)
}

type serviceImpl struct {
	repo        repository.Session
	bookingRepo bookingRepo.Booking
	publisher   event.Publisher
	photoStore  s3.S3
	locks       *lock.KeyedMutex
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Session,
	bookingRepo bookingRepo.Booking,
	publisher event.Publisher,
	photoStore s3.S3,
	locks *lock.KeyedMutex,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Session {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
		photoStore:  photoStore,
		locks:       locks,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Start resolves the scanned QR token to a booking and opens a session for
// it. A booking can hold one non-terminal session at a time; scanning twice
// is a conflict, not a no-op, so the second staff member learns the slot is
// taken. The booking lock covers the uniqueness read and the insert.
func (s *serviceImpl) Start(ctx context.Context, req dto.StartSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookingID, err := qrtoken.Decode(req.QRToken)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	booking, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	s.locks.Lock(lockBookingPrefix + booking.ID)
	defer s.locks.Unlock(lockBookingPrefix + booking.ID)

	existing, err := s.repo.FindByBooking(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find session by booking")

		return res, fmt.Errorf("failed to find session by booking: %w", err)
	}

	if existing.ID != constant.Empty && existing.IsActive() {
		return res, failure.Conflict("booking already has an active session") // nolint:wrapcheck
	}

	session, started, err := model.NewSession(booking.ID, req.StaffMemberID, req.QRToken)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to insert session")

		return res, fmt.Errorf("failed to insert session: %w", err)
	}

	s.publish(ctx, started)
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSession, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for session")

		return res, nil
	}

	session, err := s.getSession(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(session)

	// Outstanding charges are billed through a payment QR scanned by the
	// parent at pickup.
	if total := session.TotalCharges(); !total.IsZero() {
		res.PaymentQRToken = qrtoken.EncodePayment(session.ID, total)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListActive(ctx context.Context) (res dto.GetSessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheActiveSessions)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for active sessions")

		return res, nil
	}

	sessions, err := s.repo.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list active sessions")

		return res, fmt.Errorf("failed to list active sessions: %w", err)
	}

	res.FromModels(sessions)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active sessions to cache")
		}
	}()

	return res, nil
}

// CheckIn uploads the parent photo and records the arrival. The child name on
// the emitted event comes from the booking; a missed lookup falls back to the
// sentinel rather than failing the check-in.
func (s *serviceImpl) CheckIn(ctx context.Context, id string, req dto.CheckInRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockSessionPrefix + id)
	defer s.locks.Unlock(lockSessionPrefix + id)

	session, err := s.getSession(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	artifactRef, err := s.capturePhoto(ctx, session, req.PhotoData)
	if err != nil {
		return res, err
	}

	photo, err := model.NewParentPhoto(artifactRef, session.StaffMemberID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	childName := unknownChildName

	booking, err := s.bookingRepo.Get(ctx, session.BookingID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve child name from booking")
	} else if booking.ID != constant.Empty {
		childName = booking.ChildInfo.Name
	}

	checkedIn, err := session.CheckIn(photo, childName)
	if err != nil {
		s.discardPhoto(ctx, artifactRef)

		return res, err // nolint:wrapcheck
	}

	return s.persist(ctx, session, checkedIn)
}

// discardPhoto removes an uploaded photo whose check-in did not go through,
// so rejected scans leave no orphaned artifacts behind.
func (s *serviceImpl) discardPhoto(ctx context.Context, artifactRef string) {
	objectName := s.photoStore.GetObjectNameFromURL(s.cfg.External.S3.BucketName, artifactRef)
	if objectName == constant.Empty {
		return
	}

	if err := s.photoStore.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.Empty, objectName); err != nil {
		log.Warn().Err(err).Str("artifact_ref", artifactRef).Msg("failed to discard orphaned photo")
	}
}

// ApplyOvertime appends an overtime charge at the flat per-minute rate.
func (s *serviceImpl) ApplyOvertime(ctx context.Context, id string, req dto.ApplyOvertimeRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.ApplyOvertime")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockSessionPrefix + id)
	defer s.locks.Unlock(lockSessionPrefix + id)

	session, err := s.getSession(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	charge, err := model.NewOvertimeCharge(session.ID, req.OvertimeMinutes)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	applied, err := session.ApplyCharge(charge)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	return s.persist(ctx, session, applied)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string, req dto.CheckOutRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockSessionPrefix + id)
	defer s.locks.Unlock(lockSessionPrefix + id)

	session, err := s.getSession(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	checkedOut, err := session.CheckOut(model.NewSessionNotes(req.Notes, session.StaffMemberID))
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	return s.persist(ctx, session, checkedOut)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.locks.Lock(lockSessionPrefix + id)
	defer s.locks.Unlock(lockSessionPrefix + id)

	session, err := s.getSession(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	completed, err := session.Complete()
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	return s.persist(ctx, session, completed)
}

func (s *serviceImpl) getSession(ctx context.Context, id string) (model.BookingSession, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return model.BookingSession{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return model.BookingSession{}, failure.NotFound("session not found") // nolint:wrapcheck
	}

	return session, nil
}

func (s *serviceImpl) capturePhoto(ctx context.Context, session model.BookingSession, photoData string) (string, error) {
	raw, err := base64.DecodePayload(photoData)
	if err != nil {
		return constant.Empty, failure.Validation("photo data is not valid base64") // nolint:wrapcheck
	}

	contentType := base64.GetContentType(photoData)
	fileName := fmt.Sprintf("%s_%s", session.StaffMemberID, session.ID)

	url, err := s.photoStore.UploadFileBytes(
		ctx,
		s.cfg.External.S3.BucketName,
		s.cfg.External.S3.PhotoDirectory,
		fileName,
		contentType,
		raw,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload parent photo")

		return constant.Empty, fmt.Errorf("failed to upload parent photo: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) persist(ctx context.Context, session model.BookingSession, evt event.Event) (res dto.SessionResponse, err error) {
	if err = s.repo.Update(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to update session")

		return res, fmt.Errorf("failed to update session: %w", err)
	}

	s.publish(ctx, evt)
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)

	res.FromModel(session)

	return res, nil
}

// publish hands events to the sink after the state change is committed.
// Failures are logged and swallowed, the session stays committed.
func (s *serviceImpl) publish(ctx context.Context, events ...event.Event) {
	if err := s.publisher.Publish(ctx, events...); err != nil {
		log.Error().Err(err).Msg("failed to publish domain events")
	}
}
