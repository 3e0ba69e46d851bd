package domain

import (
	"fmt"
	"regexp"
	"time"
)

const (
	DefaultBackgroundColor = "#8B9D83"
	DefaultCircleColor     = "#F5F5DC"
	DefaultBreathDuration  = 6 * time.Second
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Settings are the user's breathing and bell preferences.
type Settings struct {
	IntervalBellsEnabled bool
	InhaleDuration       time.Duration
	ExhaleDuration       time.Duration
	BackgroundColor      string
	CircleColor          string
}

func DefaultSettings() Settings {
	return Settings{
		IntervalBellsEnabled: true,
		InhaleDuration:       DefaultBreathDuration,
		ExhaleDuration:       DefaultBreathDuration,
		BackgroundColor:      DefaultBackgroundColor,
		CircleColor:          DefaultCircleColor,
	}
}

func (s Settings) Validate() error {
	if s.InhaleDuration <= 0 {
		return fmt.Errorf("%w: inhale duration must be positive", ErrInvalidSettings)
	}
	if s.ExhaleDuration <= 0 {
		return fmt.Errorf("%w: exhale duration must be positive", ErrInvalidSettings)
	}
	if !hexColorPattern.MatchString(s.BackgroundColor) {
		return fmt.Errorf("%w: background color %q is not #RRGGBB", ErrInvalidSettings, s.BackgroundColor)
	}
	if !hexColorPattern.MatchString(s.CircleColor) {
		return fmt.Errorf("%w: circle color %q is not #RRGGBB", ErrInvalidSettings, s.CircleColor)
	}
	return nil
}

// BreathCycle is one inhale plus one exhale.
func (s Settings) BreathCycle() time.Duration {
	return s.InhaleDuration + s.ExhaleDuration
}

// Inhaling reports whether the breathing guide is on the inhale half at the
// given offset into the counting phase.
func (s Settings) Inhaling(offset time.Duration) bool {
	cycle := s.BreathCycle()
	if cycle <= 0 {
		return true
	}
	return offset%cycle < s.InhaleDuration
}
