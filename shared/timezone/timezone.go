// Package timezone pins every timestamp the service produces to one
// configured IANA location (APP_TIMEZONE). Booking windows, event envelopes
// and audit metadata all take their clock from here.
package timezone

import (
	"time"

	"github.com/rs/zerolog/log"

	"nestling/config"
)

var appLocation *time.Location

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Unknown timezone, falling back to UTC. Use IANA names such as 'UTC' or 'America/Los_Angeles'")

		appLocation = time.UTC

		return
	}

	appLocation = loc
}

// Now returns the current time in the configured location.
func Now() time.Time {
	return time.Now().In(location())
}

// In converts a time to the configured location.
func In(t time.Time) time.Time {
	return t.In(location())
}

// Location returns the configured location.
func Location() *time.Location {
	return location()
}

func location() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}
