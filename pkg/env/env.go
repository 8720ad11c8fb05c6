// Package env reads process environment variables with fallbacks. Real
// configuration goes through pkg/config; this only serves early bootstrap
// paths that run before config is loaded.
package env

import "os"

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
