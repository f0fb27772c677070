package config

import (
	"os"
	"strconv"
)

// IsDebug reads REDWAN_DEBUG before any config struct is parsed, so the
// logger can be set up first. "1" and "true" enable it.
func IsDebug() bool {
	on, err := strconv.ParseBool(os.Getenv("REDWAN_DEBUG"))
	return err == nil && on
}
