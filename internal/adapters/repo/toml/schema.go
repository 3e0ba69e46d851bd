package toml

import (
	"fmt"
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

const currentSchemaVersion = 1

type historySchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *historySchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s historySchema) validateVersion() error {
	return checkVersion("history", s.Version)
}

type sessionSchema struct {
	ID              string `toml:"id"`
	Type            string `toml:"type"`
	StartTime       string `toml:"start_time"`
	DurationSeconds int64  `toml:"duration_seconds"`
	Completed       bool   `toml:"completed"`
}

type settingsSchema struct {
	Version         int     `toml:"version"`
	IntervalBells   bool    `toml:"interval_bells"`
	InhaleSeconds   float64 `toml:"inhale_seconds"`
	ExhaleSeconds   float64 `toml:"exhale_seconds"`
	BackgroundColor string  `toml:"background_color"`
	CircleColor     string  `toml:"circle_color"`
}

func (s settingsSchema) validateVersion() error {
	return checkVersion("settings", s.Version)
}

func checkVersion(name string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", name, version, currentSchemaVersion)
	}

	return nil
}

func toSessionSchema(record domain.SessionRecord) sessionSchema {
	return sessionSchema{
		ID:              string(record.ID),
		Type:            record.Type,
		StartTime:       record.StartTime.UTC().Format(time.RFC3339),
		DurationSeconds: int64(record.Duration / time.Second),
		Completed:       record.Completed,
	}
}

func fromSessionSchema(entry sessionSchema) (domain.SessionRecord, error) {
	startTime, err := time.Parse(time.RFC3339, entry.StartTime)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("parse start time of session %s: %w", entry.ID, err)
	}

	return domain.SessionRecord{
		ID:        domain.SessionID(entry.ID),
		Type:      entry.Type,
		StartTime: startTime,
		Duration:  time.Duration(entry.DurationSeconds) * time.Second,
		Completed: entry.Completed,
	}, nil
}

func toSettingsSchema(settings domain.Settings) settingsSchema {
	return settingsSchema{
		Version:         currentSchemaVersion,
		IntervalBells:   settings.IntervalBellsEnabled,
		InhaleSeconds:   settings.InhaleDuration.Seconds(),
		ExhaleSeconds:   settings.ExhaleDuration.Seconds(),
		BackgroundColor: settings.BackgroundColor,
		CircleColor:     settings.CircleColor,
	}
}

func fromSettingsSchema(schema settingsSchema) domain.Settings {
	return domain.Settings{
		IntervalBellsEnabled: schema.IntervalBells,
		InhaleDuration:       secondsToDuration(schema.InhaleSeconds),
		ExhaleDuration:       secondsToDuration(schema.ExhaleSeconds),
		BackgroundColor:      schema.BackgroundColor,
		CircleColor:          schema.CircleColor,
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
}
