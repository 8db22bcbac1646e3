package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nestling/infras/otel"
	"nestling/infras/postgres"
	"nestling/internal/domains/session/model"
	"nestling/shared/constant"
)

type Session interface {
	Insert(ctx context.Context, session model.BookingSession) error
	Update(ctx context.Context, session model.BookingSession) error
	Get(ctx context.Context, id string) (model.BookingSession, error)
	FindByBooking(ctx context.Context, bookingID string) (model.BookingSession, error)
	ListActive(ctx context.Context) ([]model.BookingSession, error)
}

const (
	queryInsertSession = `
		INSERT INTO booking_sessions (
			id, booking_id, staff_member_id, status, check_in_time, check_out_time,
			photo_artifact_ref, notes, created_at, modified_at
		) VALUES (
			:id, :booking_id, :staff_member_id, :status, :check_in_time, :check_out_time,
			:photo_artifact_ref, :notes, :created_at, :modified_at
		)`

	queryUpdateSession = `
		UPDATE booking_sessions SET
			status             = :status,
			check_in_time      = :check_in_time,
			check_out_time     = :check_out_time,
			photo_artifact_ref = :photo_artifact_ref,
			notes              = :notes,
			modified_at        = :modified_at
		WHERE id = :id`

	querySelectSession = `
		SELECT id, booking_id, staff_member_id, status, check_in_time, check_out_time,
		       photo_artifact_ref, notes, created_at, modified_at
		FROM booking_sessions`

	// Charges are append-only; re-inserting already persisted rows is a no-op.
	queryInsertCharge = `
		INSERT INTO session_charges (
			id, session_id, kind, amount, currency, description, overtime_minutes, applied_at
		) VALUES (
			:id, :session_id, :kind, :amount, :currency, :description, :overtime_minutes, :applied_at
		) ON CONFLICT (id) DO NOTHING`

	querySelectCharges = `
		SELECT id, session_id, kind, amount, currency, description, overtime_minutes, applied_at
		FROM session_charges
		WHERE session_id = $1
		ORDER BY applied_at`
)

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, session model.BookingSession) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryInsertSession, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return repo.insertCharges(ctx, session)
}

func (repo *repositoryImpl) Update(ctx context.Context, session model.BookingSession) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryUpdateSession, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return repo.insertCharges(ctx, session)
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (session model.BookingSession, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &session, querySelectSession+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingSession{}, nil
	}

	if err != nil {
		return model.BookingSession{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err = repo.loadCharges(ctx, &session); err != nil {
		return model.BookingSession{}, err
	}

	return session, nil
}

func (repo *repositoryImpl) FindByBooking(ctx context.Context, bookingID string) (session model.BookingSession, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.FindByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &session, querySelectSession+" WHERE booking_id = $1 ORDER BY created_at DESC LIMIT 1", bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingSession{}, nil
	}

	if err != nil {
		return model.BookingSession{}, fmt.Errorf("failed to find session by booking: %w", err)
	}

	if err = repo.loadCharges(ctx, &session); err != nil {
		return model.BookingSession{}, err
	}

	return session, nil
}

func (repo *repositoryImpl) ListActive(ctx context.Context) (sessions []model.BookingSession, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := querySelectSession + " WHERE status IN ($1, $2) ORDER BY created_at"

	err = repo.db.Read.SelectContext(ctx, &sessions, query, model.SessionStatusStarted, model.SessionStatusCheckedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	for i := range sessions {
		if err = repo.loadCharges(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (repo *repositoryImpl) insertCharges(ctx context.Context, session model.BookingSession) error {
	for _, charge := range session.Charges {
		if _, err := repo.db.Write.NamedExecContext(ctx, queryInsertCharge, charge); err != nil {
			return fmt.Errorf("failed to insert session charge: %w", err)
		}
	}

	return nil
}

func (repo *repositoryImpl) loadCharges(ctx context.Context, session *model.BookingSession) error {
	err := repo.db.Read.SelectContext(ctx, &session.Charges, querySelectCharges, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load session charges: %w", err)
	}

	return nil
}
