package domain

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseIntro      Phase = "intro"
	PhaseCounting   Phase = "counting"
	PhasePaused     Phase = "paused"
	PhaseCompleting Phase = "completing"
	PhaseCompleted  Phase = "completed"
	PhaseAborted    Phase = "aborted"
)

func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAborted
}

func (p Phase) Label() string {
	switch p {
	case PhaseNotStarted:
		return "ready"
	case PhaseIntro:
		return "settling in"
	case PhaseCounting:
		return "meditating"
	case PhasePaused:
		return "paused"
	case PhaseCompleting:
		return "closing bells"
	case PhaseCompleted:
		return "complete"
	case PhaseAborted:
		return "ended early"
	default:
		return string(p)
	}
}
