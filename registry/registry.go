// Package registry keeps the mapping of logical names to registered Azure
// storage account configurations and persists it through the config store.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/Zechman/d365fo.tools/config"
	"github.com/Zechman/d365fo.tools/storage/azure"
)

const (
	// DefaultConfigName is the named configuration value holding the registry.
	DefaultConfigName = "azure.storage.accounts"
	// DefaultActiveConfigName holds the account selected by Activate.
	DefaultActiveConfigName = "azure.storage.active"
)

var (
	// ErrAlreadyExists is returned when registering a logical name that is
	// already taken and force was not supplied.
	ErrAlreadyExists = errors.New("storage account configuration already exists")
	// ErrNotFound is returned when the logical name is not registered.
	ErrNotFound = errors.New("storage account configuration not found")
)

// Registry is the full mapping of logical names to registered accounts. It
// is materialized from the store as one snapshot and written back whole.
type Registry map[string]azure.Account

// Entry pairs a logical name with its account for storage and listing.
type Entry struct {
	Name string `mapstructure:"name"`

	azure.Account `mapstructure:",squash"`
}

// Load materializes the registry from the store. A value never persisted at
// any tier loads as an empty registry, not an error.
func Load(store config.Store, name string) (Registry, error) {
	raw, err := store.Get(name)
	if err != nil {
		return nil, fmt.Errorf("load storage account configurations, %w", err)
	}

	if raw == nil {
		return Registry{}, nil
	}

	var entries []Entry
	if err := mapstructure.Decode(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode storage account configurations, %w", err)
	}

	reg := make(Registry, len(entries))
	for _, e := range entries {
		reg[e.Name] = e.Account
	}

	return reg, nil
}

// Save persists the whole registry to the given scope's tier.
func Save(store config.Store, name string, reg Registry, scope config.Scope) error {
	entries := make([]interface{}, 0, len(reg))
	for _, n := range sortedNames(reg) {
		entries = append(entries, encodeAccount(n, reg[n]))
	}

	if err := store.Set(name, entries, scope); err != nil {
		return fmt.Errorf("save storage account configurations, %w", err)
	}

	return nil
}

// Entries returns the registry as a name-sorted slice.
func (r Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r))
	for _, n := range sortedNames(r) {
		entries = append(entries, Entry{Name: n, Account: r[n]})
	}

	return entries
}

func sortedNames(r Registry) []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// encodeAccount flattens an account into the plain map shape the store
// serializes. Keys stay lower-case so tier files read back predictably.
func encodeAccount(name string, a azure.Account) map[string]interface{} {
	m := map[string]interface{}{
		"name":       name,
		"accountid":  a.AccountID,
		"blobname":   a.BlobName,
		"authmethod": string(a.AuthMethod),
	}

	if a.AccessToken != "" {
		m["accesstoken"] = a.AccessToken
	}

	if a.SASToken != "" {
		m["sastoken"] = a.SASToken
	}

	return m
}
