package domain

import (
	"fmt"
	"sort"
	"time"
)

type CueKeyKind string

const (
	CueIntervalBell        CueKeyKind = "interval_bell"
	CueGuidedVoiceover     CueKeyKind = "guided_voiceover"
	CueCompletionBell      CueKeyKind = "completion_bell"
	CueCompletionVoiceover CueKeyKind = "completion_voiceover"
	// Pre-roll kinds label the intro clip and the bell that opens the
	// countdown. They are played once by the pre-roll sequence and never
	// enter a CueSet.
	CuePreRollVoiceover CueKeyKind = "preroll_voiceover"
	CuePreRollBell      CueKeyKind = "preroll_bell"
)

// CueKey identifies a cue for de-duplication. It is comparable, so two keys
// are equal when kind and mark are equal.
type CueKey struct {
	Kind CueKeyKind
	// Mark is the offset in seconds for interval bells and guided checkpoints.
	// Zero for completion keys.
	Mark int
}

func IntervalBellKey(offsetSeconds int) CueKey {
	return CueKey{Kind: CueIntervalBell, Mark: offsetSeconds}
}

func GuidedVoiceoverKey(offsetSeconds int) CueKey {
	return CueKey{Kind: CueGuidedVoiceover, Mark: offsetSeconds}
}

func CompletionBellKey() CueKey {
	return CueKey{Kind: CueCompletionBell}
}

func CompletionVoiceoverKey() CueKey {
	return CueKey{Kind: CueCompletionVoiceover}
}

func PreRollVoiceoverKey() CueKey {
	return CueKey{Kind: CuePreRollVoiceover}
}

func PreRollBellKey() CueKey {
	return CueKey{Kind: CuePreRollBell}
}

func (k CueKey) String() string {
	switch k.Kind {
	case CueIntervalBell:
		return fmt.Sprintf("IntervalBell(%s)", time.Duration(k.Mark)*time.Second)
	case CueGuidedVoiceover:
		return fmt.Sprintf("GuidedVoiceover(%d)", k.Mark)
	case CueCompletionBell:
		return "CompletionBell"
	case CueCompletionVoiceover:
		return "CompletionVoiceover"
	case CuePreRollVoiceover:
		return "PreRollVoiceover"
	case CuePreRollBell:
		return "PreRollBell"
	default:
		return string(k.Kind)
	}
}

// CueSet records which cues a session already dispatched.
type CueSet map[CueKey]struct{}

func NewCueSet() CueSet {
	return CueSet{}
}

func (s CueSet) Has(key CueKey) bool {
	_, ok := s[key]
	return ok
}

// Add records key and reports whether it was new.
func (s CueSet) Add(key CueKey) bool {
	if s.Has(key) {
		return false
	}
	s[key] = struct{}{}
	return true
}

func (s CueSet) Keys() []CueKey {
	keys := make([]CueKey, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Mark < keys[j].Mark
	})
	return keys
}

type CueKind string

const (
	CueKindBell      CueKind = "bell"
	CueKindVoiceover CueKind = "voiceover"
)

const (
	SingleStrike = 1
	TripleStrike = 3
)

// Cue is one dispatch request produced for a key. A checkpoint may yield a
// bell and a voiceover under the same key.
type Cue struct {
	Key     CueKey
	Kind    CueKind
	Strikes int
	Clip    string
	// Delay postpones dispatch relative to the tick that produced the cue.
	Delay time.Duration
}

func BellCue(key CueKey, strikes int) Cue {
	return Cue{Key: key, Kind: CueKindBell, Strikes: strikes}
}

func VoiceoverCue(key CueKey, clip string, delay time.Duration) Cue {
	return Cue{Key: key, Kind: CueKindVoiceover, Clip: clip, Delay: delay}
}

// OrderBellsFirst sorts cues so bells precede voiceovers, keeping the
// relative order inside each group.
func OrderBellsFirst(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Kind == CueKindBell && cues[j].Kind != CueKindBell
	})
}
