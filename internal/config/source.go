package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Source resolves configuration keys.  Environment variables win over
// values from the optional TOML file, which win over the defaults passed
// by the caller.  The TOML file is flat and uses the same key names as
// the environment, e.g.
//
//	APP_PORT      = 8082
//	STORE_BACKEND = "mysql"
type Source struct {
	file map[string]string
}

// NewSource loads the TOML file at path.  An empty path yields an
// environment-only source.
func NewSource(path string) (Source, error) {
	src := Source{file: map[string]string{}}
	if path == "" {
		return src, nil
	}
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Source{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	for k, v := range raw {
		src.file[k] = fmt.Sprint(v)
	}
	return src, nil
}

func (s Source) lookup(k string) (string, bool) {
	if v := os.Getenv(k); v != "" {
		return v, true
	}
	if v, ok := s.file[k]; ok && v != "" {
		return v, true
	}
	return "", false
}

// Str returns the value for k or d.
func (s Source) Str(k, d string) string {
	if v, ok := s.lookup(k); ok {
		return v
	}
	return d
}

// Bool accepts the usual spellings of true and false; anything else yields d.
func (s Source) Bool(k string, d bool) bool {
	v, ok := s.lookup(k)
	if !ok {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

// Int returns the integer value for k, or d when unset or malformed.
func (s Source) Int(k string, d int) int {
	v, ok := s.lookup(k)
	if !ok {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

// Dur parses a Go duration ("30s", "5m"), falling back to d.
func (s Source) Dur(k string, d time.Duration) time.Duration {
	v, ok := s.lookup(k)
	if !ok {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
