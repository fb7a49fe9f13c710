package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"
)

// FileStore is a Store backed by one YAML file per scope tier. Reads merge
// the system tier first and the user tier on top, so user values shadow
// system ones. Writes target exactly one tier.
type FileStore struct {
	logger     log.Logger
	userPath   string
	systemPath string
}

// NewFileStore creates a FileStore over the given tier files. Neither file
// needs to exist yet.
func NewFileStore(logger log.Logger, userPath, systemPath string) *FileStore {
	return &FileStore{logger: logger, userPath: userPath, systemPath: systemPath}
}

// DefaultUserPath returns the per-user configuration file location.
func DefaultUserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir, %w", err)
	}

	return filepath.Join(dir, "d365fo.tools", "config.yaml"), nil
}

// DefaultSystemPath returns the machine-wide configuration file location.
func DefaultSystemPath() string {
	return filepath.Join("/etc", "d365fo.tools", "config.yaml")
}

// SystemDir returns the directory holding the system tier file, the target
// of DirProbe permission checks.
func (s *FileStore) SystemDir() string {
	return filepath.Dir(s.systemPath)
}

// Get reads both tier files and returns the aggregated value under name.
func (s *FileStore) Get(name string) (interface{}, error) {
	merged := viper.New()

	// System first so the user tier shadows it.
	for _, path := range []string{s.systemPath, s.userPath} {
		tier, err := readTier(path)
		if err != nil {
			return nil, err
		}

		if tier == nil {
			continue
		}

		if err := merged.MergeConfigMap(tier.AllSettings()); err != nil {
			return nil, fmt.Errorf("merge configuration from %s, %w", path, err)
		}
	}

	return merged.Get(name), nil
}

// Set rewrites the scope's tier file with value stored under name,
// preserving every other name already persisted in that tier.
func (s *FileStore) Set(name string, value interface{}, scope Scope) error {
	path := s.userPath
	if scope == ScopeSystem {
		path = s.systemPath
	}

	tier, err := readTier(path)
	if err != nil {
		return err
	}

	if tier == nil {
		tier = viper.New()
		tier.SetConfigFile(path)
		tier.SetConfigType("yaml")
	}

	tier.Set(name, value)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create configuration dir for %s, %w", path, err)
	}

	// Tier files carry secrets, keep them out of reach of other users.
	tier.SetConfigPermissions(0o600)

	if err := tier.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write configuration to %s, %w", path, err)
	}

	level.Debug(s.logger).Log("msg", "persisted configuration value", "name", name, "scope", scope, "path", path)

	return nil
}

// readTier loads a single tier file. A missing file yields nil without error.
func readTier(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("read configuration from %s, %w", path, err)
	}

	return v, nil
}
