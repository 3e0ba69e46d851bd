package domain

import (
	"fmt"
	"sort"
	"time"
)

const (
	ClipIntro             = "intro"
	ClipFirstInstruction  = "first_instruction"
	ClipSecondInstruction = "second_instruction"
	ClipConclusion        = "conclusion"
)

// Checkpoint is a guided-session cue evaluated against elapsed time.
type Checkpoint struct {
	Offset time.Duration
	// Bell rings a single strike when interval bells are enabled.
	Bell bool
	Clip string
	// ClipDelay separates the clip from the bell of the same checkpoint.
	ClipDelay time.Duration
}

func (c Checkpoint) Key() CueKey {
	return GuidedVoiceoverKey(int(c.Offset / time.Second))
}

func (c Checkpoint) Validate() error {
	if c.Offset < 0 {
		return fmt.Errorf("checkpoint offset %s is negative", c.Offset)
	}
	if c.Offset%time.Second != 0 {
		return fmt.Errorf("checkpoint offset %s is not a whole number of seconds", c.Offset)
	}
	if c.ClipDelay < 0 {
		return fmt.Errorf("checkpoint %s clip delay is negative", c.Offset)
	}
	if !c.Bell && c.Clip == "" {
		return fmt.Errorf("checkpoint %s has neither bell nor clip", c.Offset)
	}
	return nil
}

// GuidedSchedule maps a session length to its checkpoint table.
type GuidedSchedule struct {
	IntroClip      string
	CompletionClip string
	Default        []Checkpoint
	// ByDuration overrides Default for sessions of exactly that length.
	ByDuration map[time.Duration][]Checkpoint
}

// DefaultGuidedSchedule is the fifteen-minute script. Longer sessions reuse it
// and fall silent after the last checkpoint unless a length-specific table is
// supplied.
func DefaultGuidedSchedule() GuidedSchedule {
	return GuidedSchedule{
		IntroClip:      ClipIntro,
		CompletionClip: ClipConclusion,
		Default: []Checkpoint{
			{Offset: 0, Clip: ClipFirstInstruction},
			{Offset: 5 * time.Minute, Bell: true, Clip: ClipSecondInstruction, ClipDelay: time.Second},
			{Offset: 10 * time.Minute, Bell: true},
			{Offset: 15 * time.Minute, Clip: ClipConclusion},
		},
	}
}

// For returns the checkpoints that can be reached within total, ordered by offset.
func (g GuidedSchedule) For(total time.Duration) []Checkpoint {
	table := g.Default
	if specific, ok := g.ByDuration[total]; ok {
		table = specific
	}

	checkpoints := make([]Checkpoint, 0, len(table))
	for _, checkpoint := range table {
		if checkpoint.Offset > total {
			continue
		}
		checkpoints = append(checkpoints, checkpoint)
	}
	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].Offset < checkpoints[j].Offset
	})
	return checkpoints
}

func (g GuidedSchedule) Validate() error {
	if g.IntroClip == "" {
		return fmt.Errorf("intro clip is required")
	}
	tables := map[time.Duration][]Checkpoint{0: g.Default}
	for total, table := range g.ByDuration {
		if total <= 0 {
			return fmt.Errorf("schedule length %s must be positive", total)
		}
		tables[total] = table
	}
	for total, table := range tables {
		seen := make(map[time.Duration]struct{}, len(table))
		for _, checkpoint := range table {
			if err := checkpoint.Validate(); err != nil {
				return err
			}
			if _, ok := seen[checkpoint.Offset]; ok {
				return fmt.Errorf("duplicate checkpoint %s in %s table", checkpoint.Offset, tableName(total))
			}
			seen[checkpoint.Offset] = struct{}{}
		}
	}
	return nil
}

func tableName(total time.Duration) string {
	if total == 0 {
		return "default"
	}
	return total.String()
}
