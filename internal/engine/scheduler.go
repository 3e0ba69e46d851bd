package engine

import (
	"time"

	"github.com/bnema/vipasana-cli/internal/domain"
)

// CueScheduler decides which cues are due at a given elapsed time. It keeps
// no state of its own: the fired set passed to Evaluate is the only memory,
// and every key it returns has already been added to that set.
type CueScheduler struct {
	mode           domain.Mode
	intervalBells  bool
	intervalPeriod time.Duration
	checkpoints    []domain.Checkpoint
}

func NewCueScheduler(config domain.SessionConfig, checkpoints []domain.Checkpoint, intervalPeriod time.Duration) CueScheduler {
	return CueScheduler{
		mode:           config.Mode,
		intervalBells:  config.IntervalBellsEnabled,
		intervalPeriod: intervalPeriod,
		checkpoints:    checkpoints,
	}
}

// Evaluate returns the cues newly due, bells first.
func (s CueScheduler) Evaluate(elapsed, remaining time.Duration, fired domain.CueSet) []domain.Cue {
	var cues []domain.Cue
	if s.mode == domain.ModeGuided {
		cues = s.checkpointCues(elapsed, fired)
	} else {
		cues = s.intervalCues(elapsed, remaining, fired)
	}
	domain.OrderBellsFirst(cues)
	return cues
}

// intervalCues rings one strike on every period mark except the final second,
// which belongs to the completion sequence.
func (s CueScheduler) intervalCues(elapsed, remaining time.Duration, fired domain.CueSet) []domain.Cue {
	if !s.intervalBells || s.intervalPeriod <= 0 {
		return nil
	}
	if elapsed <= 0 || remaining <= 0 || elapsed%s.intervalPeriod != 0 {
		return nil
	}

	key := domain.IntervalBellKey(int(elapsed / time.Second))
	if !fired.Add(key) {
		return nil
	}
	return []domain.Cue{domain.BellCue(key, domain.SingleStrike)}
}

func (s CueScheduler) checkpointCues(elapsed time.Duration, fired domain.CueSet) []domain.Cue {
	var cues []domain.Cue
	for _, checkpoint := range s.checkpoints {
		if checkpoint.Offset > elapsed {
			break
		}
		key := checkpoint.Key()
		if !fired.Add(key) {
			continue
		}
		if checkpoint.Bell && s.intervalBells {
			cues = append(cues, domain.BellCue(key, domain.SingleStrike))
		}
		if checkpoint.Clip != "" {
			cues = append(cues, domain.VoiceoverCue(key, checkpoint.Clip, checkpoint.ClipDelay))
		}
	}
	return cues
}
