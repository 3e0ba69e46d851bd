package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/vipasana-cli/internal/domain"
	"github.com/bnema/vipasana-cli/internal/ports"
)

const (
	settingsPathKey         = "settings.path"
	settingsFile            = "settings.toml"
	settingsTempFilePattern = ".settings-*.toml.tmp"
)

// SettingsRepository stores user settings in a TOML file. Keys missing from
// the file keep their default values.
type SettingsRepository struct {
	settingsPath string
	mu           *sync.RWMutex
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(cfg *viper.Viper) (*SettingsRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	settingsPath, err := resolvePath(cfg, settingsPathKey, settingsFile)
	if err != nil {
		return nil, err
	}

	return &SettingsRepository{settingsPath: settingsPath, mu: lockForPath(settingsPath)}, nil
}

func (r *SettingsRepository) Path() string {
	return r.settingsPath
}

func (r *SettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	schema := toSettingsSchema(domain.DefaultSettings())
	data, err := os.ReadFile(r.settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := schema.validateVersion(); err != nil {
		return domain.Settings{}, err
	}

	settings := fromSettingsSchema(schema)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("settings file %s: %w", r.settingsPath, err)
	}

	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(toSettingsSchema(settings))
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.settingsPath, settingsTempFilePattern, data); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}
