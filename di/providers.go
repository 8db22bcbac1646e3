package di

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"nestling/config"
	"nestling/infras/otel"
	"nestling/infras/postgres"
	"nestling/shared/constant"
	"nestling/shared/timezone"

	bookingRepository "nestling/internal/domains/booking/repository"
	franchiseModel "nestling/internal/domains/franchise/model"
	franchiseRepository "nestling/internal/domains/franchise/repository"
	sessionRepository "nestling/internal/domains/session/repository"
)

// ProvideConnection skips the Postgres dial entirely when the in-memory
// driver is selected, so local runs do not need a database.
func ProvideConnection(cfg *config.Config) *postgres.Connection {
	switch cfg.DB.Driver {
	case constant.DBDriverMemory:
		return nil
	case constant.DBDriverPostgres:
		return postgres.New(cfg)
	default:
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("unknown database driver")

		return nil
	}
}

func ProvideFranchiseRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) franchiseRepository.Franchise {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return seedFranchises(franchiseRepository.NewMemory())
	}

	return franchiseRepository.New(db, ot)
}

// seedFranchises mirrors the seed migration so the memory driver starts with
// a usable franchise directory.
func seedFranchises(repo franchiseRepository.Franchise) franchiseRepository.Franchise {
	now := timezone.Now()

	franchises := []franchiseModel.Franchise{
		{
			ID:            "a1b2c3d4-0001-4000-8000-000000000001",
			Name:          "Happy Kids Downtown",
			Address:       "123 Main St",
			City:          "Seattle",
			PostalCode:    "98101",
			MaxCapacity:   15,
			StandardRate:  decimal.RequireFromString("12.00"),
			PeakHourRate:  decimal.RequireFromString("18.00"),
			OpenTime:      "07:00",
			CloseTime:     "19:00",
			OperatingDays: pq.Int64Array{1, 2, 3, 4, 5},
			IsActive:      true,
		},
		{
			ID:            "a1b2c3d4-0002-4000-8000-000000000002",
			Name:          "Sunshine Daycare",
			Address:       "456 Oak Ave",
			City:          "Portland",
			PostalCode:    "97201",
			MaxCapacity:   20,
			StandardRate:  decimal.RequireFromString("10.00"),
			PeakHourRate:  decimal.RequireFromString("15.00"),
			OpenTime:      "06:30",
			CloseTime:     "18:30",
			OperatingDays: pq.Int64Array{1, 2, 3, 4, 5, 6},
			IsActive:      true,
		},
		{
			ID:            "a1b2c3d4-0003-4000-8000-000000000003",
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
		},
	}

	for _, franchise := range franchises {
		franchise.CreatedAt = now
		franchise.ModifiedAt = now

		if err := repo.Insert(context.Background(), franchise); err != nil {
			log.Warn().Err(err).Str("franchise", franchise.Name).Msg("failed to seed franchise")
		}
	}

	return repo
}

func ProvideBookingRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) bookingRepository.Booking {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return bookingRepository.NewMemory()
	}

	return bookingRepository.New(db, ot)
}

func ProvidePaymentRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) bookingRepository.Payment {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return bookingRepository.NewPaymentMemory()
	}

	return bookingRepository.NewPayment(db, ot)
}

func ProvideSessionRepository(cfg *config.Config, db *postgres.Connection, ot otel.Otel) sessionRepository.Session {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return sessionRepository.NewMemory()
	}

	return sessionRepository.New(db, ot)
}
