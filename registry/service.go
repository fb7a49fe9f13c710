package registry

import (
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-viper/mapstructure/v2"

	"github.com/Zechman/d365fo.tools/config"
	"github.com/Zechman/d365fo.tools/storage/azure"
)

// ScopeResolver validates a requested scope before any registry mutation.
type ScopeResolver interface {
	Resolve(requested config.Scope) (config.Scope, error)
}

// Service orchestrates registration bookkeeping: scope resolution, collision
// detection, and whole-snapshot persistence of the registry. It is stateless
// between calls; the registry is re-read on every operation.
type Service struct {
	logger   log.Logger
	store    config.Store
	resolver ScopeResolver

	configName       string
	activeConfigName string
}

// NewService creates a registration Service over the given store and resolver.
func NewService(logger log.Logger, store config.Store, resolver ScopeResolver, opts ...Option) *Service {
	o := options{
		configName:       DefaultConfigName,
		activeConfigName: DefaultActiveConfigName,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &Service{
		logger:           logger,
		store:            store,
		resolver:         resolver,
		configName:       o.configName,
		activeConfigName: o.activeConfigName,
	}
}

// Register records a storage account configuration under a logical name.
// An existing name fails with ErrAlreadyExists unless force is set, in which
// case the record is replaced wholesale. The persisted registry is only
// touched after every check passes.
func (s *Service) Register(name, accountID, blobName string, cred azure.Credential, scope config.Scope, force bool) error {
	resolved, err := s.resolver.Resolve(scope)
	if err != nil {
		return err
	}

	account, err := azure.NewAccount(accountID, blobName, cred)
	if err != nil {
		return err
	}

	reg, err := Load(s.store, s.configName)
	if err != nil {
		return err
	}

	if _, ok := reg[name]; ok {
		if !force {
			return fmt.Errorf("%w: %q, use force to overwrite", ErrAlreadyExists, name)
		}

		level.Info(s.logger).Log("msg", "overwriting storage account configuration", "name", name)
	}

	reg[name] = account

	if err := Save(s.store, s.configName, reg, resolved); err != nil {
		return err
	}

	level.Info(s.logger).Log("msg", "registered storage account configuration",
		"name", name, "account", account.AccountID, "blob", account.BlobName,
		"auth", account.AuthMethod, "scope", resolved)

	return nil
}

// Unregister removes the configuration registered under name. A missing name
// fails with ErrNotFound.
func (s *Service) Unregister(name string, scope config.Scope) error {
	resolved, err := s.resolver.Resolve(scope)
	if err != nil {
		return err
	}

	reg, err := Load(s.store, s.configName)
	if err != nil {
		return err
	}

	if _, ok := reg[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	delete(reg, name)

	if err := Save(s.store, s.configName, reg, resolved); err != nil {
		return err
	}

	level.Info(s.logger).Log("msg", "unregistered storage account configuration", "name", name, "scope", resolved)

	return nil
}

// List returns all registered configurations sorted by logical name.
func (s *Service) List() ([]Entry, error) {
	reg, err := Load(s.store, s.configName)
	if err != nil {
		return nil, err
	}

	return reg.Entries(), nil
}

// Activate copies the configuration registered under name into the active
// selection, so later operations can run against it without naming it.
func (s *Service) Activate(name string, scope config.Scope) error {
	resolved, err := s.resolver.Resolve(scope)
	if err != nil {
		return err
	}

	reg, err := Load(s.store, s.configName)
	if err != nil {
		return err
	}

	account, ok := reg[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err := s.store.Set(s.activeConfigName, encodeAccount(name, account), resolved); err != nil {
		return fmt.Errorf("save active storage account configuration, %w", err)
	}

	level.Info(s.logger).Log("msg", "activated storage account configuration", "name", name, "scope", resolved)

	return nil
}

// Active returns the currently selected configuration, or nil when none has
// been activated.
func (s *Service) Active() (*Entry, error) {
	raw, err := s.store.Get(s.activeConfigName)
	if err != nil {
		return nil, fmt.Errorf("load active storage account configuration, %w", err)
	}

	if raw == nil {
		return nil, nil
	}

	var e Entry
	if err := mapstructure.Decode(raw, &e); err != nil {
		return nil, fmt.Errorf("decode active storage account configuration, %w", err)
	}

	return &e, nil
}
