package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nestling/infras/otel"
	"nestling/infras/postgres"
	"nestling/internal/domains/franchise/model"
	"nestling/shared/constant"
)

type Franchise interface {
	Insert(ctx context.Context, franchise model.Franchise) error
	Get(ctx context.Context, id string) (model.Franchise, error)
	GetAllActive(ctx context.Context) ([]model.Franchise, error)
}

const (
	queryInsert = `
		INSERT INTO franchises (
			id, name, address, city, postal_code, max_capacity, standard_rate,
			peak_hour_rate, open_time, close_time, operating_days, is_active,
			created_at, modified_at
		) VALUES (
			:id, :name, :address, :city, :postal_code, :max_capacity, :standard_rate,
			:peak_hour_rate, :open_time, :close_time, :operating_days, :is_active,
			:created_at, :modified_at
		)`

	querySelect = `
		SELECT id, name, address, city, postal_code, max_capacity, standard_rate,
		       peak_hour_rate, open_time, close_time, operating_days, is_active,
		       created_at, modified_at
		FROM franchises`
)

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Franchise {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, franchise model.Franchise) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".franchise.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = repo.db.Write.NamedExecContext(ctx, queryInsert, franchise); err != nil {
		return fmt.Errorf("failed to insert franchise: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (franchise model.Franchise, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".franchise.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.GetContext(ctx, &franchise, querySelect+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Franchise{}, nil
	}

	if err != nil {
		return model.Franchise{}, fmt.Errorf("failed to get franchise: %w", err)
	}

	return franchise, nil
}

func (repo *repositoryImpl) GetAllActive(ctx context.Context) (franchises []model.Franchise, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".franchise.GetAllActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.Read.SelectContext(ctx, &franchises, querySelect+" WHERE is_active ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get active franchises: %w", err)
	}

	return franchises, nil
}
