package application

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

type StartSessionCommand struct {
	Duration time.Duration
	Mode     domain.Mode
	// IntervalBells overrides the saved setting when set.
	IntervalBells *bool
}

// UpdateSettingsCommand changes only the fields that are set.
type UpdateSettingsCommand struct {
	IntervalBells   *bool
	InhaleDuration  *time.Duration
	ExhaleDuration  *time.Duration
	BackgroundColor *string
	CircleColor     *string
}

func (c UpdateSettingsCommand) apply(settings *domain.Settings) {
	if c.IntervalBells != nil {
		settings.IntervalBellsEnabled = *c.IntervalBells
	}
	if c.InhaleDuration != nil {
		settings.InhaleDuration = *c.InhaleDuration
	}
	if c.ExhaleDuration != nil {
		settings.ExhaleDuration = *c.ExhaleDuration
	}
	if c.BackgroundColor != nil {
		settings.BackgroundColor = *c.BackgroundColor
	}
	if c.CircleColor != nil {
		settings.CircleColor = *c.CircleColor
	}
}
