package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/vipasana-cli/internal/domain"
)

func newTestSettingsRepository(t *testing.T, settingsPath string) *SettingsRepository {
	t.Helper()

	config := viper.New()
	config.Set("settings.path", settingsPath)
	repo, err := NewSettingsRepository(config)
	require.NoError(t, err)
	return repo
}

func TestSettingsRepositoryMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	repo := newTestSettingsRepository(t, filepath.Join(t.TempDir(), "settings.toml"))

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestSettingsRepository(t, filepath.Join(t.TempDir(), "settings.toml"))
	want := domain.Settings{
		IntervalBellsEnabled: false,
		InhaleDuration:       4500 * time.Millisecond,
		ExhaleDuration:       7 * time.Second,
		BackgroundColor:      "#102030",
		CircleColor:          "#FFEEDD",
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsRepositoryPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("interval_bells = false\ninhale_seconds = 4\n"), 0o600))
	repo := newTestSettingsRepository(t, settingsPath)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.IntervalBellsEnabled = false
	want.InhaleDuration = 4 * time.Second
	assert.Equal(t, want, got)
}

func TestSettingsRepositoryRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("circle_color = \"white\"\n"), 0o600))
	repo := newTestSettingsRepository(t, settingsPath)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidSettings)

	bad := domain.DefaultSettings()
	bad.ExhaleDuration = 0
	require.ErrorIs(t, repo.Save(context.Background(), bad), domain.ErrInvalidSettings)
}

func TestSettingsRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("interval_bells = "), 0o600))
	repo := newTestSettingsRepository(t, settingsPath)

	_, err := repo.Load(context.Background())
	assert.ErrorContains(t, err, "decode settings file")
}

func TestSettingsRepositoryDefaultPath(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewSettingsRepository(viper.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), domain.DefaultSettings()))

	info, err := os.Stat(filepath.Join(homeDir, ".vipasana", "settings.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
