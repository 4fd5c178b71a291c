package booster

import (
	"math"
	"time"
)

// DefaultCooldown is the wait between two successful boosters
const DefaultCooldown = 3 * time.Hour

// CanDraw reports whether the record's cooldown is unset or already over
func CanDraw(rec *PlayerRecord, now time.Time) bool {
	expires := rec.CooldownExpiresAt()
	return expires.IsZero() || !expires.After(now)
}

// CooldownRemaining returns how long until the record may draw again, never
// negative.
func CooldownRemaining(rec *PlayerRecord, now time.Time) time.Duration {
	expires := rec.CooldownExpiresAt()
	if expires.IsZero() || !expires.After(now) {
		return 0
	}
	return expires.Sub(now)
}

// RemainingHours rounds a remaining cooldown up to whole hours for display
func RemainingHours(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours()))
}
