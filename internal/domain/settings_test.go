package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	assert.NoError(t, settings.Validate())
	assert.True(t, settings.IntervalBellsEnabled)
	assert.Equal(t, 12*time.Second, settings.BreathCycle())
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "zero inhale", mutate: func(s *Settings) { s.InhaleDuration = 0 }, wantErr: "inhale duration"},
		{name: "negative exhale", mutate: func(s *Settings) { s.ExhaleDuration = -time.Second }, wantErr: "exhale duration"},
		{name: "short hex", mutate: func(s *Settings) { s.CircleColor = "#FFF" }, wantErr: "circle color"},
		{name: "missing hash", mutate: func(s *Settings) { s.BackgroundColor = "8B9D83" }, wantErr: "background color"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			settings := DefaultSettings()
			tc.mutate(&settings)
			err := settings.Validate()
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSettingsInhaling(t *testing.T) {
	t.Parallel()

	settings := Settings{InhaleDuration: 4 * time.Second, ExhaleDuration: 6 * time.Second}

	assert.True(t, settings.Inhaling(0))
	assert.True(t, settings.Inhaling(3*time.Second))
	assert.False(t, settings.Inhaling(4*time.Second))
	assert.False(t, settings.Inhaling(9*time.Second))
	assert.True(t, settings.Inhaling(10*time.Second))
}
