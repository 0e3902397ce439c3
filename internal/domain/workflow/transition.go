package workflow

// Rule identifies which branch of the transition cascade produced a result.
type Rule uint8

const (
	RuleCancel Rule = iota + 1
	RuleUncancel
	RuleFanOut
	RuleCollapse
	RuleCompleteFinal
	RuleReopenFinal
	RuleReturnToStage
	RuleBackward
	RuleAdvance
	RuleJump
	RuleNoop
)

var ruleNames = map[Rule]string{
	RuleCancel:        "cancel",
	RuleUncancel:      "uncancel",
	RuleFanOut:        "fan_out",
	RuleCollapse:      "collapse",
	RuleCompleteFinal: "complete_final",
	RuleReopenFinal:   "reopen_final",
	RuleReturnToStage: "return_to_stage",
	RuleBackward:      "backward",
	RuleAdvance:       "advance",
	RuleJump:          "jump",
	RuleNoop:          "noop",
}

func (r Rule) String() string {
	if n, ok := ruleNames[r]; ok {
		return n
	}
	return "unknown"
}

// Rules lists every rule, in cascade order.
func Rules() []Rule {
	return []Rule{
		RuleCancel, RuleUncancel, RuleFanOut, RuleCollapse, RuleCompleteFinal, RuleReopenFinal,
		RuleReturnToStage, RuleBackward, RuleAdvance, RuleJump, RuleNoop,
	}
}

// Transition returns the ledger that results from requesting stage
// requested. It never fails: requests that match no rule leave the ledger
// unchanged.
func Transition(l Ledger, requested Stage) Ledger {
	next, _ := Apply(l, requested)
	return next
}

// Apply is Transition plus the rule that fired. The first matching rule
// wins.
func Apply(l Ledger, requested Stage) (Ledger, Rule) {
	if requested == StageCancelled {
		return Cancelled(), RuleCancel
	}

	if l.phase == PhaseCancelled {
		switch {
		case requested.IsLinear():
			return Linear(requested), RuleUncancel
		case requested.IsFinal():
			return FanOut(NewFinalSet(requested)), RuleUncancel
		case requested == StageDone:
			return Done(), RuleUncancel
		}
		return l, RuleNoop
	}

	if requested == StageToPhotograph {
		switch {
		case l.phase == PhaseLinear && l.Primary() == StageToPhotograph:
			return FanOut(AllFinal), RuleFanOut
		case l.phase == PhaseFanOut:
			return Linear(StageToPhotograph), RuleCollapse
		}
	}

	if requested.IsFinal() {
		return toggleFinal(l, requested)
	}

	if requested.IsLinear() {
		if l.phase == PhaseFanOut || l.phase == PhaseDone {
			return Linear(requested), RuleReturnToStage
		}
		current := l.Primary()
		switch {
		case requested.before(current):
			return Linear(requested), RuleBackward
		case requested == current:
			if next, ok := successor(current); ok {
				return Linear(next), RuleAdvance
			}
			return l, RuleNoop
		default:
			return Linear(requested), RuleJump
		}
	}

	if requested == StageDone && l.phase != PhaseDone {
		return Done(), RuleJump
	}
	return l, RuleNoop
}

// toggleFinal ticks an outstanding final stage or reopens a completed one.
// A regular order that never reached photography has no final stage to
// toggle.
func toggleFinal(l Ledger, requested Stage) (Ledger, Rule) {
	switch l.phase {
	case PhaseFanOut:
		if l.remaining.Has(requested) {
			return FanOut(l.remaining.Without(requested)), RuleCompleteFinal
		}
		return FanOut(l.remaining.With(requested)), RuleReopenFinal
	case PhaseDone:
		return FanOut(NewFinalSet(requested)), RuleReopenFinal
	case PhaseLinear:
		if l.Primary() == StageToPhotograph {
			return FanOut(NewFinalSet(requested)), RuleReopenFinal
		}
	}
	return l, RuleNoop
}

// CompletesStage reports whether the transition marked stage s as done by
// advancing past it.
func CompletesStage(prev Ledger, rule Rule, s Stage) bool {
	return rule == RuleAdvance && prev.Primary() == s
}
