package config

import (
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// PermissionChecker reports whether the caller may write system-wide
// configuration. Implementations may log or report on their own.
type PermissionChecker interface {
	CanWriteSystem() bool
}

// Resolver maps a requested scope to the tier writes will target.
type Resolver struct {
	logger log.Logger
	perms  PermissionChecker
}

// NewResolver creates a Resolver backed by the given permission checker.
func NewResolver(logger log.Logger, perms PermissionChecker) Resolver {
	return Resolver{logger: logger, perms: perms}
}

// Resolve validates the requested scope. User scope always succeeds. System
// scope consults the permission checker and fails with ErrPermissionDenied
// when the caller may not write system-wide configuration.
func (r Resolver) Resolve(requested Scope) (Scope, error) {
	if requested == ScopeSystem && !r.perms.CanWriteSystem() {
		level.Error(r.logger).Log("msg", "system scope requested without authorization")
		return 0, ErrPermissionDenied
	}

	return requested, nil
}

// DirProbe checks system-scope permission by probing the system tier's
// directory for write access.
type DirProbe struct {
	Dir string
}

// CanWriteSystem attempts to create and remove a file in the probed
// directory. Any failure is treated as lack of authorization.
func (p DirProbe) CanWriteSystem() bool {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return false
	}

	f, err := os.CreateTemp(p.Dir, ".probe-*")
	if err != nil {
		return false
	}

	name := f.Name()
	if err := f.Close(); err != nil {
		return false
	}

	return os.Remove(name) == nil
}
