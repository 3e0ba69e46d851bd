package domain

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeSilent Mode = "silent"
	ModeGuided Mode = "guided"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeSilent, ModeGuided:
		return true
	default:
		return false
	}
}

func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, raw)
	}
	return mode, nil
}

// PresetMinutes are the durations offered on the home screen.
var PresetMinutes = []int{15, 30, 45, 60}

// SessionConfig is fixed for the lifetime of one session.
type SessionConfig struct {
	TotalDuration        time.Duration
	Mode                 Mode
	IntervalBellsEnabled bool
}

func (c SessionConfig) Validate() error {
	if c.TotalDuration <= 0 {
		return fmt.Errorf("%w: total duration must be positive", ErrInvalidConfig)
	}
	if c.TotalDuration%time.Second != 0 {
		return fmt.Errorf("%w: total duration %s is not a whole number of seconds", ErrInvalidConfig, c.TotalDuration)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// SessionType is the label stored with a completed session, e.g. "15min Guided".
func (c SessionConfig) SessionType() string {
	minutes := int(c.TotalDuration / time.Minute)
	label := fmt.Sprintf("%dmin", minutes)
	if c.TotalDuration%time.Minute != 0 {
		label = fmt.Sprintf("%ds", int(c.TotalDuration/time.Second))
	}
	if c.Mode == ModeGuided {
		return label + " Guided"
	}
	return label
}
