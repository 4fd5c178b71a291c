package booster

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PlayerRecord is one user's persisted state. Cooldown holds the expiry as
// unix milliseconds, 0 meaning no active cooldown.
type PlayerRecord struct {
	Collection Collection `json:"collection"`
	Cooldown   int64      `json:"cooldown"`
}

// NewPlayerRecord returns the record of a user seen for the first time
func NewPlayerRecord() *PlayerRecord {
	return &PlayerRecord{Collection: Collection{}}
}

// CooldownExpiresAt returns the cooldown expiry, zero when unset
func (r *PlayerRecord) CooldownExpiresAt() time.Time {
	if r.Cooldown == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.Cooldown)
}

// SetCooldownExpiresAt stores t; a zero t clears the cooldown
func (r *PlayerRecord) SetCooldownExpiresAt(t time.Time) {
	if t.IsZero() {
		r.Cooldown = 0
		return
	}
	r.Cooldown = t.UnixMilli()
}

// Clone returns a deep copy
func (r *PlayerRecord) Clone() *PlayerRecord {
	out := &PlayerRecord{
		Collection: make(Collection, len(r.Collection)),
		Cooldown:   r.Cooldown,
	}
	for name, count := range r.Collection {
		out.Collection[name] = count
	}
	return out
}

// Collection maps card name to owned count. Absent means zero owned; zero
// counts are never stored.
type Collection map[string]int

// key finds the stored key for name, case-insensitively
func (c Collection) key(name string) (string, bool) {
	if _, ok := c[name]; ok {
		return name, true
	}
	for k := range c {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// Count returns how many copies of name are owned
func (c Collection) Count(name string) int {
	if k, ok := c.key(name); ok {
		return c[k]
	}
	return 0
}

// Total returns the number of cards owned, counting duplicates
func (c Collection) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

type legacyEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UnmarshalJSON accepts the current {name: count} object as well as the
// older [{name, count}] list and flat list of names, where every occurrence
// counts as one copy.
func (c *Collection) UnmarshalJSON(data []byte) error {
	out := Collection{}
	trimmed := strings.TrimSpace(string(data))

	switch {
	case trimmed == "null":
	case strings.HasPrefix(trimmed, "{"):
		var counts map[string]int
		if err := json.Unmarshal(data, &counts); err != nil {
			return fmt.Errorf("invalid collection: %w", err)
		}
		for name, n := range counts {
			out.add(name, n)
		}
	case strings.HasPrefix(trimmed, "["):
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("invalid collection: %w", err)
		}
		for _, item := range items {
			var name string
			if err := json.Unmarshal(item, &name); err == nil {
				out.add(name, 1)
				continue
			}
			var entry legacyEntry
			if err := json.Unmarshal(item, &entry); err != nil {
				return fmt.Errorf("invalid collection entry %s: %w", item, err)
			}
			if entry.Count == 0 {
				entry.Count = 1
			}
			out.add(entry.Name, entry.Count)
		}
	default:
		return fmt.Errorf("invalid collection: %s", trimmed)
	}

	*c = out
	return nil
}

func (c Collection) add(name string, n int) {
	name = strings.TrimSpace(name)
	if name == "" || n <= 0 {
		return
	}
	c[name] += n
}
