package booster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanDraw(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := NewPlayerRecord()

	assert.True(t, CanDraw(rec, now), "unset cooldown")

	rec.SetCooldownExpiresAt(now.Add(time.Minute))
	assert.False(t, CanDraw(rec, now))

	rec.SetCooldownExpiresAt(now)
	assert.True(t, CanDraw(rec, now), "expiry equal to now")

	rec.SetCooldownExpiresAt(now.Add(-time.Hour))
	assert.True(t, CanDraw(rec, now))
	assert.Equal(t, time.Duration(0), CooldownRemaining(rec, now))
}

func TestCooldownRemaining_ThreeHours(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := NewPlayerRecord()
	rec.SetCooldownExpiresAt(now.Add(3 * time.Hour))

	tests := []struct {
		elapsed time.Duration
		hours   int
	}{
		{0, 3},
		{time.Minute, 3},
		{time.Hour, 2},
		{time.Hour + time.Second, 2},
		{2 * time.Hour, 1},
		{3*time.Hour - time.Millisecond, 1},
		{3 * time.Hour, 0},
		{4 * time.Hour, 0},
	}

	for _, tt := range tests {
		remaining := CooldownRemaining(rec, now.Add(tt.elapsed))
		assert.Equal(t, tt.hours, RemainingHours(remaining), "after %s", tt.elapsed)
	}
}
