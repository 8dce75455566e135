package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUTC_Now(t *testing.T) {
	var c Clocker = New()

	now := c.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
