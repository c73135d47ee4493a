// file: rtrie/constant/constant.go
package constant

import "errors"

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrBadRequest     = errors.New("invalid request")
	ErrNotFound       = errors.New("key not found")
	ErrBadKey         = errors.New("key is not a 64-bit integer")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrPanic          = errors.New("recovered panic")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	DefaultConfigFile = "rtrie.json"
	EnvPrefix         = "RTRIE_"
	EnvConfigPath     = "RTRIE_CONFIG"
)

// ----------------------------------------------------
// Metric names
// ----------------------------------------------------

const (
	MetricPuts     = "puts"
	MetricReplaces = "replaces"
	MetricGets     = "gets"
	MetricMisses   = "misses"
	MetricDeletes  = "deletes"
	MetricScans    = "scans"
	MetricErrors   = "errors"
)

// ----------------------------------------------------
// HTTP
// ----------------------------------------------------

const (
	DefaultListLimit = 1000
	MaxListLimit     = 100000
)
