package gesture

import "slideconfirm/internal/motion"

// State is the lifecycle of a single drag
type State int

const (
	Idle State = iota
	Dragging
	Released // transient, resolved before End returns
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Outcome is what a gesture event resolved to
type Outcome int

const (
	// OutcomeNone means the gesture is still in progress or was ignored
	OutcomeNone Outcome = iota
	// OutcomeCompleted means the thumb reached the end of the track
	OutcomeCompleted
	// OutcomeCancelled means the drag was released short of the end
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Phase identifies a raw pointer event
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

// Event is a raw pointer event as seen by the interpreter, before any
// direction flip. It is handed to the pass-through handler.
type Event struct {
	Phase       Phase
	Translation float64
}

// Interpreter turns drag events into clamped offset updates
type Interpreter struct {
	store *motion.Store
	rtl   bool
	state State

	origin      float64
	passthrough func(Event)
}

// NewInterpreter creates an interpreter writing into store.
// With rtl set, incoming translations are negated.
func NewInterpreter(store *motion.Store, rtl bool) *Interpreter {
	return &Interpreter{
		store: store,
		rtl:   rtl,
	}
}

// SetPassthrough installs a handler that sees every raw event
func (in *Interpreter) SetPassthrough(fn func(Event)) {
	in.passthrough = fn
}

// State returns the current gesture state
func (in *Interpreter) State() State {
	return in.state
}

// Start begins a drag from the thumb's current resting offset
func (in *Interpreter) Start() {
	in.emit(Event{Phase: PhaseStart})
	in.origin = in.store.Offset()
	in.state = Dragging
}

// Move applies the translation measured from the start of the drag.
// Reaching the end of the track completes the gesture immediately.
func (in *Interpreter) Move(translation float64) Outcome {
	in.emit(Event{Phase: PhaseMove, Translation: translation})
	if in.state != Dragging {
		return OutcomeNone
	}

	if in.rtl {
		translation = -translation
	}
	in.store.SetOffset(in.origin + translation)

	if in.store.AtEnd() {
		return in.release()
	}
	return OutcomeNone
}

// End finishes the drag
func (in *Interpreter) End() Outcome {
	in.emit(Event{Phase: PhaseEnd})
	if in.state != Dragging {
		return OutcomeNone
	}
	return in.release()
}

// Abort drops an in-flight drag without producing an outcome
func (in *Interpreter) Abort() {
	in.state = Idle
}

func (in *Interpreter) release() Outcome {
	in.state = Released
	outcome := OutcomeCancelled
	if in.store.AtEnd() {
		outcome = OutcomeCompleted
	}
	in.state = Idle
	return outcome
}

func (in *Interpreter) emit(ev Event) {
	if in.passthrough != nil {
		in.passthrough(ev)
	}
}
