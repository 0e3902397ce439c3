package workflow

import "strings"

// FinalSet is a subset of the four final stages. It cannot hold anything
// else.
type FinalSet uint8

const AllFinal FinalSet = 1<<len(finalOrder) - 1

func finalBit(s Stage) FinalSet {
	for i, f := range finalOrder {
		if f == s {
			return 1 << i
		}
	}
	return 0
}

// NewFinalSet builds a set from stages, silently dropping non-final ones.
func NewFinalSet(stages ...Stage) FinalSet {
	var fs FinalSet
	for _, s := range stages {
		fs |= finalBit(s)
	}
	return fs
}

func (fs FinalSet) Has(s Stage) bool {
	b := finalBit(s)
	return b != 0 && fs&b != 0
}

func (fs FinalSet) With(s Stage) FinalSet { return fs | finalBit(s) }

func (fs FinalSet) Without(s Stage) FinalSet { return fs &^ finalBit(s) }

func (fs FinalSet) Empty() bool { return fs&AllFinal == 0 }

func (fs FinalSet) Len() int {
	n := 0
	for _, f := range finalOrder {
		if fs.Has(f) {
			n++
		}
	}
	return n
}

// Stages lists the members in display order; nil when empty.
func (fs FinalSet) Stages() []Stage {
	var out []Stage
	for _, f := range finalOrder {
		if fs.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (fs FinalSet) String() string {
	parts := make([]string, 0, len(finalOrder))
	for _, s := range fs.Stages() {
		parts = append(parts, string(s))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
