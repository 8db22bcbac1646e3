package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"nestling/infras/otel"
	"nestling/infras/postgres"
	"nestling/internal/domains/booking/model"
	"nestling/shared/constant"
	"nestling/shared/failure"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	GetAll(ctx context.Context) ([]model.Booking, error)
	FindOverlapping(ctx context.Context, franchiseID string, start, end time.Time) ([]model.Booking, error)
}

const (
	queryInsertBooking = `
		INSERT INTO bookings (
			id, reference_number, franchise_id, start_datetime, end_datetime,
			customer_name, customer_email, customer_phone, customer_emergency_contact,
			child_name, child_age, child_special_needs, child_allergies,
			child_pickup_authorization, child_special_instructions,
			total_amount, currency, booking_status, payment_status, qr_token,
			created_at, modified_at
		) VALUES (
			:id, :reference_number, :franchise_id, :start_datetime, :end_datetime,
			:customer_name, :customer_email, :customer_phone, :customer_emergency_contact,
			:child_name, :child_age, :child_special_needs, :child_allergies,
			:child_pickup_authorization, :child_special_instructions,
			:total_amount, :currency, :booking_status, :payment_status, :qr_token,
			:created_at, :modified_at
		)`

	queryUpdateBooking = `
		UPDATE bookings SET
			booking_status = :booking_status,
			payment_status = :payment_status,
			modified_at    = :modified_at
		WHERE id = :id`

	querySelectBooking = `
		SELECT id, reference_number, franchise_id, start_datetime, end_datetime,
		       customer_name, customer_email, customer_phone, customer_emergency_contact,
		       child_name, child_age, child_special_needs, child_allergies,
		       child_pickup_authorization, child_special_instructions,
		       total_amount, currency, booking_status, payment_status, qr_token,
		       created_at, modified_at
		FROM bookings`
)

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryInsertBooking, booking); err != nil {
		return translateInsertError(err)
	}

	return nil
}

// translateInsertError maps constraint violations onto domain failures so
// handlers return 4xx instead of a bare 500.
func translateInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeUniqueViolation:
			return failure.Conflict("booking reference already exists") // nolint:wrapcheck
		case constant.PqErrorCodeFkViolation:
			return failure.BadRequestFromString("franchise does not exist") // nolint:wrapcheck
		}
	}

	return fmt.Errorf("failed to insert booking: %w", err)
}

func (repo *repositoryImpl) Update(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryUpdateBooking, booking); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (booking model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &booking, querySelectBooking+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, nil
	}

	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &bookings, querySelectBooking+" ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}

// FindOverlapping returns non-cancelled bookings at the franchise whose care
// window intersects [start, end). Boundaries touching exactly do not overlap.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, franchiseID string, start, end time.Time) (bookings []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := querySelectBooking + `
		WHERE franchise_id = $1
		  AND booking_status <> $2
		  AND start_datetime < $3
		  AND end_datetime > $4`

	err = repo.db.Read.SelectContext(ctx, &bookings, query, franchiseID, model.BookingStatusCancelled, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return bookings, nil
}
