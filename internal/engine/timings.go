package engine

import "time"

const tickInterval = time.Second

// Timings are the fixed delays of the pre-roll and completion sequences.
// Bells are fire-and-forget, so their playback time is assumed, not observed.
type Timings struct {
	SilentPreRoll            time.Duration
	TripleBellSettle         time.Duration
	IntervalBellPeriod       time.Duration
	CompletionVoiceoverDelay time.Duration
	SilentFinishDelay        time.Duration
	GuidedFinishDelay        time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		SilentPreRoll:            3 * time.Second,
		TripleBellSettle:         4 * time.Second,
		IntervalBellPeriod:       5 * time.Minute,
		CompletionVoiceoverDelay: 4500 * time.Millisecond,
		SilentFinishDelay:        time.Second,
		GuidedFinishDelay:        8 * time.Second,
	}
}

func (t Timings) withDefaults() Timings {
	defaults := DefaultTimings()
	if t.SilentPreRoll <= 0 {
		t.SilentPreRoll = defaults.SilentPreRoll
	}
	if t.TripleBellSettle <= 0 {
		t.TripleBellSettle = defaults.TripleBellSettle
	}
	if t.IntervalBellPeriod <= 0 {
		t.IntervalBellPeriod = defaults.IntervalBellPeriod
	}
	if t.CompletionVoiceoverDelay <= 0 {
		t.CompletionVoiceoverDelay = defaults.CompletionVoiceoverDelay
	}
	if t.SilentFinishDelay <= 0 {
		t.SilentFinishDelay = defaults.SilentFinishDelay
	}
	if t.GuidedFinishDelay <= 0 {
		t.GuidedFinishDelay = defaults.GuidedFinishDelay
	}
	return t
}
