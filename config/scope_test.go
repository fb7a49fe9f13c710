package config

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	allow bool
}

func (f fakeChecker) CanWriteSystem() bool { return f.allow }

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{
		"User":   ScopeUser,
		"user":   ScopeUser,
		"System": ScopeSystem,
		"SYSTEM": ScopeSystem,
	} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseScope("global")
	assert.Error(t, err)
}

func TestResolveUserAlwaysSucceeds(t *testing.T) {
	r := NewResolver(log.NewNopLogger(), fakeChecker{allow: false})

	got, err := r.Resolve(ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, ScopeUser, got)
}

func TestResolveSystemAuthorized(t *testing.T) {
	r := NewResolver(log.NewNopLogger(), fakeChecker{allow: true})

	got, err := r.Resolve(ScopeSystem)
	require.NoError(t, err)
	assert.Equal(t, ScopeSystem, got)
}

func TestResolveSystemDenied(t *testing.T) {
	r := NewResolver(log.NewNopLogger(), fakeChecker{allow: false})

	_, err := r.Resolve(ScopeSystem)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDirProbeWritableDir(t *testing.T) {
	p := DirProbe{Dir: t.TempDir()}
	assert.True(t, p.CanWriteSystem())
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "User", ScopeUser.String())
	assert.Equal(t, "System", ScopeSystem.String())
}
