package workflow

import "fmt"

// Phase tags which variant a Ledger holds.
type Phase uint8

const (
	PhaseLinear Phase = iota
	PhaseFanOut
	PhaseDone
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseLinear:
		return "linear"
	case PhaseFanOut:
		return "fan_out"
	case PhaseDone:
		return "done"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Ledger is the workflow position of one order.
//
// It is one of four variants:
//   - Linear(stage): at one of the five linear stages, no fan-out yet
//   - FanOut(remaining): photography passed, remaining final stages outstanding
//   - Done
//   - Cancelled
//
// The persisted two-column shape (primary stage + active final stages) is
// produced by Columns and read back by FromColumns. The zero value is
// Linear(StageWaitingForInfo).
type Ledger struct {
	phase     Phase
	stage     Stage
	remaining FinalSet
}

// Linear panics if s is not one of the five linear stages.
func Linear(s Stage) Ledger {
	if !s.IsLinear() {
		panic(fmt.Sprintf("workflow: %q is not a linear stage", s))
	}
	return Ledger{phase: PhaseLinear, stage: s}
}

// FanOut with an empty set has nothing left to do and resolves to Done.
func FanOut(remaining FinalSet) Ledger {
	remaining &= AllFinal
	if remaining.Empty() {
		return Done()
	}
	return Ledger{phase: PhaseFanOut, remaining: remaining}
}

func Done() Ledger { return Ledger{phase: PhaseDone} }

func Cancelled() Ledger { return Ledger{phase: PhaseCancelled} }

// New is the ledger of a freshly created regular order.
func New() Ledger { return Linear(StageWaitingForInfo) }

// Initial computes the ledger of an order at creation. Sale orders skip
// production and start DONE. An empty requested stage means the default
// start; a final stage opens the full fan-out.
func Initial(requested Stage, sale bool) Ledger {
	switch {
	case sale:
		return Done()
	case requested == "":
		return New()
	case requested.IsLinear():
		return Linear(requested)
	case requested.IsFinal():
		return FanOut(AllFinal)
	case requested == StageDone:
		return Done()
	case requested == StageCancelled:
		return Cancelled()
	default:
		return New()
	}
}

// FromColumns rebuilds a ledger from its persisted columns. Pairs that break
// the ledger invariants are normalised: foreign active values are dropped, a
// non-empty active list means the order is fanned out, and active lists on
// DONE or CANCELLED are ignored.
func FromColumns(primary Stage, active []Stage) Ledger {
	switch primary {
	case StageCancelled:
		return Cancelled()
	case StageDone:
		return Done()
	}
	if set := NewFinalSet(active...); !set.Empty() {
		return FanOut(set)
	}
	if primary.IsLinear() {
		return Linear(primary)
	}
	if primary.IsFinal() {
		return FanOut(NewFinalSet(primary))
	}
	return New()
}

// Columns returns the persisted shape. The active list is nil unless the
// order is fanned out.
func (l Ledger) Columns() (primary Stage, active []Stage) {
	return l.Primary(), l.remaining.Stages()
}

func (l Ledger) Phase() Phase { return l.phase }

// Primary is the single current stage: the linear stage, TO_PHOTOGRAPH while
// fanned out, DONE or CANCELLED.
func (l Ledger) Primary() Stage {
	switch l.phase {
	case PhaseFanOut:
		return StageToPhotograph
	case PhaseDone:
		return StageDone
	case PhaseCancelled:
		return StageCancelled
	}
	if l.stage == "" {
		return StageWaitingForInfo
	}
	return l.stage
}

// Active is the set of final stages still outstanding.
func (l Ledger) Active() FinalSet { return l.remaining }

func (l Ledger) FannedOut() bool { return l.phase == PhaseFanOut }

func (l Ledger) Equal(o Ledger) bool {
	return l.Primary() == o.Primary() && l.remaining == o.remaining
}

func (l Ledger) String() string {
	if l.remaining.Empty() {
		return fmt.Sprintf("{%s}", l.Primary())
	}
	return fmt.Sprintf("{%s %s}", l.Primary(), l.remaining)
}
