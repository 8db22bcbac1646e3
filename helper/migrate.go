// Package helper wraps golang-migrate for the schema under
// migrations/postgres. Migrations always run against the write endpoint.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"

	"nestling/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	actionUp     = "up"
	actionDown   = "down"
	actionStepUp = "step-up"
	actionDrop   = "drop"

	migrationSource = "file://migrations/postgres"
)

func Runner(config *config.Config, action string) error {
	mig, err := newMigrate(config)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case actionUp:
		return apply(mig.Up, "Database migrations completed successfully")
	case actionStepUp:
		return apply(func() error { return mig.Steps(1) }, "Database migrations completed successfully")
	case actionDown:
		return apply(func() error { return mig.Steps(-1) }, "Database migrations rolled back successfully")
	case actionDrop:
		return apply(mig.Down, "Database migrations rolled back successfully")
	}

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, actionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, actionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, actionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, actionDrop)
}

func apply(step func() error, successMsg string) error {
	if err := step(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg(successMsg)

	return nil
}

func newMigrate(config *config.Config) (*migrate.Migrate, error) {
	write := config.DB.Postgres.Write

	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		write.Username,
		write.Password,
		net.JoinHostPort(write.Host, write.Port),
		dbName(config, write.Name),
		write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(migrationSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mig, nil
}

func dbName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}
