package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/carlstedt1/auto-close-tabs/internal/domain"
	"github.com/carlstedt1/auto-close-tabs/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	statePathKey     = "state.path"
	stateFile        = "state.toml"
	stateTempPattern = ".state-*.toml.tmp"
)

// StateRepository persists activity records and history entries as a
// TOML file next to the settings, so one-shot sweeps and manager
// restarts keep their grace periods and log.
type StateRepository struct {
	statePath string
	mu        *sync.RWMutex
}

var _ ports.StateRepository = (*StateRepository)(nil)

func NewStateRepository(cfg *viper.Viper) (*StateRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, settingsDir, stateFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, settingsDir))
	cfg.SetDefault(statePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		return nil, errors.New("state path is empty")
	}
	statePath, err = normalizeSettingsPath(statePath)
	if err != nil {
		return nil, err
	}

	return &StateRepository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *StateRepository) Load(ctx context.Context) (domain.PersistedState, error) {
	if err := ctx.Err(); err != nil {
		return domain.PersistedState{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.PersistedState{LastActivity: map[domain.PaneID]time.Time{}}, nil
		}
		return domain.PersistedState{}, fmt.Errorf("read state file: %w", err)
	}

	var file stateFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.PersistedState{}, fmt.Errorf("decode state file: %w", err)
	}
	if file.Version > currentSchemaVersion {
		return domain.PersistedState{}, fmt.Errorf("unsupported state schema version %d (current %d)", file.Version, currentSchemaVersion)
	}

	return fromStateSchema(file), nil
}

func (r *StateRepository) Save(ctx context.Context, state domain.PersistedState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.statePath), settingsDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	file := toStateSchema(state)
	// Map iteration order is random; keep the file diff-friendly.
	sort.Slice(file.Activity, func(i, j int) bool { return file.Activity[i].PaneID < file.Activity[j].PaneID })

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), stateTempPattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false

	return nil
}
