package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key, e.g.
// "database.postgres.dsn". Missing keys yield the zero value.
type Config interface {
	io.Closer

	// GetSecond returns an integer value as seconds.
	GetSecond(key string) time.Duration
	// GetMinute returns an integer value as minutes.
	GetMinute(key string) time.Duration

	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetArray returns a list value. A string value is split on commas.
	GetArray(key string) []string

	// GetMap returns a map value. A string value is parsed from
	// <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
