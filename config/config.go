// Package config persists named configuration values across scope tiers.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied is returned when the caller requests the System scope
// without authorization to write system-wide configuration.
var ErrPermissionDenied = errors.New("not authorized to write system-wide configuration")

// Scope selects the persistence tier a configuration value is written to.
type Scope int

const (
	// ScopeUser persists to the calling user's private configuration.
	ScopeUser Scope = iota
	// ScopeSystem persists to the machine-wide configuration shared across users.
	ScopeSystem
)

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "User"
	case ScopeSystem:
		return "System"
	}

	return fmt.Sprintf("Scope(%d)", int(s))
}

// ParseScope maps the literals "User" and "System" (case-insensitive) to a
// Scope. Anything else is a caller contract violation.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "user":
		return ScopeUser, nil
	case "system":
		return ScopeSystem, nil
	}

	return 0, fmt.Errorf("unknown scope %q, expected User or System", s)
}

// Store is the persistence engine for named configuration values.
type Store interface {
	// Get returns the value stored under name, aggregated across tiers with
	// user values shadowing system ones. A name never persisted at any tier
	// yields nil without error.
	Get(name string) (interface{}, error)

	// Set persists value under name in the given scope's tier, rewriting that
	// tier's backing file as a whole. Other names in the tier are preserved.
	Set(name string, value interface{}, scope Scope) error
}
