package repository

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=../mocks/payment_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nestling/infras/otel"
	"nestling/infras/postgres"
	"nestling/internal/domains/booking/model"
	"nestling/shared/constant"
)

type Payment interface {
	Insert(ctx context.Context, payment model.Payment) error
	Get(ctx context.Context, id string) (model.Payment, error)
	FindByBooking(ctx context.Context, bookingID string) ([]model.Payment, error)
}

const (
	queryInsertPayment = `
		INSERT INTO payments (
			id, booking_id, amount, currency, method, processor_ref, status,
			processed_at, created_at, modified_at
		) VALUES (
			:id, :booking_id, :amount, :currency, :method, :processor_ref, :status,
			:processed_at, :created_at, :modified_at
		)`

	querySelectPayment = `
		SELECT id, booking_id, amount, currency, method, processor_ref, status,
		       processed_at, created_at, modified_at
		FROM payments`
)

type paymentImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *paymentImpl) Insert(ctx context.Context, payment model.Payment) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryInsertPayment, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (repo *paymentImpl) Get(ctx context.Context, id string) (payment model.Payment, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &payment, querySelectPayment+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, nil
	}

	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

func (repo *paymentImpl) FindByBooking(ctx context.Context, bookingID string) (payments []model.Payment, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.FindByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &payments, querySelectPayment+" WHERE booking_id = $1 ORDER BY created_at", bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payments by booking: %w", err)
	}

	return payments, nil
}
