package postgres

import (
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"nestling/config"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection splits reads from writes the way the hosting setup does:
// repositories run SELECTs on Read and mutations on Write. Both may point at
// the same instance.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	host     string
	port     string
	username string
	password string
	name     string
	sslMode  string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	read := endpoint{
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		name:     dbName(config, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
	}

	write := endpoint{
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		name:     dbName(config, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
	}

	return &Connection{
		Read:  connect("read", read, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

func dbName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func connect(role string, ep endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		ep.username,
		ep.password,
		net.JoinHostPort(ep.host, ep.port),
		ep.name,
		ep.sslMode,
	)

	for attempt := range maxRetry {
		db, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			log.Info().
				Str("role", role).
				Str("host", ep.host).
				Str("port", ep.port).
				Str("dbName", ep.name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", ep.host).
			Str("port", ep.port).
			Str("dbName", ep.name).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
