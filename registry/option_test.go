package registry

import (
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zechman/d365fo.tools/config"
	"github.com/Zechman/d365fo.tools/storage/azure"
)

func TestServiceOptions(t *testing.T) {
	store := newFakeStore()
	svc := NewService(log.NewNopLogger(), store, fakeResolver{allowSystem: true},
		WithConfigName("custom.accounts"),
		WithActiveConfigName("custom.active"))

	require.NoError(t, svc.Register("n", "1", "b", azure.AccessToken("tok"), config.ScopeUser, false))
	require.NoError(t, svc.Activate("n", config.ScopeUser))

	assert.Contains(t, store.tiers[config.ScopeUser], "custom.accounts")
	assert.Contains(t, store.tiers[config.ScopeUser], "custom.active")
	assert.NotContains(t, store.tiers[config.ScopeUser], DefaultConfigName)
}
