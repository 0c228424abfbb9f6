package nav

import (
	"scrolly/scenes"
)

type Outcome int

const (
	// Applied means the state changed and the scene was repainted.
	Applied Outcome = iota
	// NoOp means the request was valid but there was nothing to do, e.g. Next on the last scene.
	NoOp
	// Busy means a paint was still running and the request was dropped.
	Busy
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NoOp:
		return "noop"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

type Buttons struct {
	PrevDisabled bool
	NextDisabled bool
}

// ButtonsFor is the only place enablement is decided.
func ButtonsFor(index, total int) Buttons {
	return Buttons{
		PrevDisabled: index == 0,
		NextDisabled: index == total-1,
	}
}

// Snapshot is what the controls show after a transition.
type Snapshot struct {
	Index   int
	Total   int
	Buttons Buttons
	Scene   *scenes.Scene
	// Group and Groups are only set while a grouped scene is active.
	Group  string
	Groups []string
}
