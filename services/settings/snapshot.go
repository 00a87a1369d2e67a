package settings

import (
	"strconv"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is an immutable view of the active configuration.
// Accessors fall back to the supplied default when a key is absent or mistyped.
type Snapshot struct {
	values map[string]interface{}
}

// NewSnapshot indexes the given entries by key. Inactive entries are skipped.
func NewSnapshot(configs []models.Configuration) *Snapshot {
	values := make(map[string]interface{}, len(configs))
	for _, c := range configs {
		if c.IsActive {
			values[c.Key] = c.Value
		}
	}
	return &Snapshot{values: values}
}

// DefaultSnapshot is the snapshot of the factory configuration.
func DefaultSnapshot() *Snapshot {
	values := make(map[string]interface{}, len(Defaults))
	for _, d := range Defaults {
		values[d.Key] = d.Value
	}
	return &Snapshot{values: values}
}

// Value returns the raw value stored under key.
func (s *Snapshot) Value(key string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *Snapshot) Strings(key string, def []string) []string {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	var items []interface{}
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case primitive.A:
		items = t
	case []interface{}:
		items = t
	default:
		return def
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return def
		}
		out = append(out, str)
	}
	return out
}

func (s *Snapshot) Int(key string, def int) int {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

func (s *Snapshot) String(key, def string) string {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	if str, ok := v.(string); ok && str != "" {
		return str
	}
	return def
}

// Location resolves localization.timezone, using UTC when it is unset or unknown.
func (s *Snapshot) Location() *time.Location {
	loc, err := time.LoadLocation(s.String(KeyTimezone, "UTC"))
	if err != nil {
		return time.UTC
	}
	return loc
}

// Provider hands out the current snapshot.
type Provider interface {
	Snapshot() *Snapshot
}

// Static is a Provider that always returns the same snapshot.
type Static struct {
	S *Snapshot
}

func (p Static) Snapshot() *Snapshot { return p.S }
