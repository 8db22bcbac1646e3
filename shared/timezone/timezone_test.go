package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nestling/shared/timezone"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestIn(t *testing.T) {
	utc := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	converted := timezone.In(utc)

	assert.True(t, utc.Equal(converted), "conversion must not move the instant")
	assert.Equal(t, timezone.Location(), converted.Location())
}
