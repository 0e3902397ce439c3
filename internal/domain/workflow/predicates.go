package workflow

// IsChecked reports whether stage s is shown as completed.
func IsChecked(l Ledger, s Stage) bool {
	switch l.phase {
	case PhaseCancelled:
		return s == StageCancelled
	case PhaseDone:
		return s != StageCancelled
	case PhaseFanOut:
		if s.IsFinal() {
			return !l.remaining.Has(s)
		}
		return s.IsLinear()
	}
	return s.before(l.Primary())
}

// IsActive reports whether s is an outstanding final stage.
func IsActive(l Ledger, s Stage) bool {
	return l.phase == PhaseFanOut && l.remaining.Has(s)
}

// IsCurrent reports whether s is the single stage the order sits at. Once
// fanned out, no stage is current.
func IsCurrent(l Ledger, s Stage) bool {
	switch l.phase {
	case PhaseLinear:
		return s == l.Primary()
	case PhaseDone:
		return s == StageDone
	}
	return false
}

// IsDisabled reports whether requesting s should be refused by the UI.
func IsDisabled(l Ledger, s Stage) bool {
	if s == StageCancelled {
		return false
	}
	switch l.phase {
	case PhaseCancelled:
		return true
	case PhaseDone:
		return false
	case PhaseFanOut:
		return !s.IsLinear() && !s.IsFinal()
	}
	if !s.IsLinear() {
		return true
	}
	return l.Primary().before(s)
}

// PrecedingStages lists the linear stages already passed.
func PrecedingStages(l Ledger) []Stage {
	switch l.phase {
	case PhaseFanOut, PhaseDone:
		return LinearStages()
	case PhaseCancelled:
		return nil
	}
	i := l.Primary().linearIndex()
	out := make([]Stage, i)
	copy(out, linearOrder[:i])
	return out
}

// StageState is one rendered column of the production board.
type StageState struct {
	Stage    Stage
	Label    string
	Checked  bool
	Active   bool
	Current  bool
	Disabled bool
}

// Board renders every board column: the linear stages, the final stages
// and CANCELLED. DONE has no column of its own.
func Board(l Ledger) []StageState {
	stages := make([]Stage, 0, len(linearOrder)+len(finalOrder)+1)
	stages = append(stages, linearOrder[:]...)
	stages = append(stages, finalOrder[:]...)
	stages = append(stages, StageCancelled)

	out := make([]StageState, 0, len(stages))
	for _, s := range stages {
		out = append(out, StageState{
			Stage:    s,
			Label:    s.Label(),
			Checked:  IsChecked(l, s),
			Active:   IsActive(l, s),
			Current:  IsCurrent(l, s),
			Disabled: IsDisabled(l, s),
		})
	}
	return out
}
