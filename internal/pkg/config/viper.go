package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: database.postgres.dsn is read
// from BOOKSTORE_DATABASE_POSTGRES_DSN.
const EnvPrefix = "BOOKSTORE"

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at pathFile, with the format taken from its
// extension, and reloads it whenever it changes on disk. Environment
// variables override file values.
func NewViper(pathFile string) (*Viper, error) {
	v := newWithEnv()
	v.SetConfigFile(pathFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", pathFile, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config reloaded", "path", pathFile, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := newWithEnv()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newWithEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetInt64 returns the value for key as int64.
func (vc *Viper) GetInt64(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetSecond reads key as a whole number of seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return vc.duration(key, time.Second)
}

// GetMinute reads key as a whole number of minutes.
func (vc *Viper) GetMinute(key string) time.Duration {
	return vc.duration(key, time.Minute)
}

func (vc *Viper) duration(key string, unit time.Duration) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * unit
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the list for key. Blank elements are dropped.
func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if s, ok := vc.v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = vc.v.GetStringSlice(key)
	}

	return lo.FilterMap(raw, func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

// GetMap returns the map for key.
func (vc *Viper) GetMap(key string) map[string]string {
	s, ok := vc.v.Get(key).(string)
	if !ok {
		return vc.v.GetStringMapString(key)
	}

	m := make(map[string]string)
	for pair := range strings.SplitSeq(s, ",") {
		k, val, found := strings.Cut(pair, ":")
		if found {
			m[strings.TrimSpace(k)] = strings.TrimSpace(val)
		}
	}

	return m
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
