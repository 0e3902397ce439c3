// Package workflow holds the production workflow of an engraving order:
// the stage catalogue, the status ledger, the transition function and the
// read-only predicates used to render stage checkboxes.
package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is one step of the order pipeline. Values are the persisted wire
// values of the orders table.
type Stage string

const (
	StageWaitingForInfo Stage = "en_attente_information"
	StageToModel        Stage = "a_modeliser_preparer"
	StageToEngrave      Stage = "a_graver"
	StageToFinish       Stage = "a_finir_laver_assembler_peindre"
	StageToPhotograph   Stage = "a_prendre_en_photo"

	StageToDeliver Stage = "a_livrer"
	StageToPublish Stage = "a_mettre_en_ligne"
	StageToInvoice Stage = "a_facturer"
	StageToReview  Stage = "demande_avis"

	StageDone      Stage = "termine"
	StageCancelled Stage = "annulee"
)

var ErrUnknownStage = errors.New("unknown stage")

// linearOrder is the only declaration of the pipeline order.
var linearOrder = [...]Stage{
	StageWaitingForInfo,
	StageToModel,
	StageToEngrave,
	StageToFinish,
	StageToPhotograph,
}

var finalOrder = [...]Stage{
	StageToDeliver,
	StageToPublish,
	StageToInvoice,
	StageToReview,
}

var stageLabels = map[Stage]string{
	StageWaitingForInfo: "Attente",
	StageToModel:        "Modélisation",
	StageToEngrave:      "Gravure",
	StageToFinish:       "Finition",
	StageToPhotograph:   "Photo",
	StageToDeliver:      "Livraison",
	StageToPublish:      "WEB",
	StageToInvoice:      "Facturation",
	StageToReview:       "Avis",
	StageDone:           "Terminé",
	StageCancelled:      "Annulée",
}

// LinearStages returns the five sequential stages in pipeline order.
func LinearStages() []Stage {
	out := make([]Stage, len(linearOrder))
	copy(out, linearOrder[:])
	return out
}

// FinalStages returns the four parallel final stages in display order.
func FinalStages() []Stage {
	out := make([]Stage, len(finalOrder))
	copy(out, finalOrder[:])
	return out
}

// AllStages returns every stage: linear, final, then DONE and CANCELLED.
func AllStages() []Stage {
	out := make([]Stage, 0, len(linearOrder)+len(finalOrder)+2)
	out = append(out, linearOrder[:]...)
	out = append(out, finalOrder[:]...)
	return append(out, StageDone, StageCancelled)
}

// ParseStage validates a raw wire value. Surrounding spaces and case are
// ignored.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, raw)
	}
	return s, nil
}

func (s Stage) IsValid() bool {
	_, ok := stageLabels[s]
	return ok
}

func (s Stage) IsLinear() bool { return s.linearIndex() >= 0 }

func (s Stage) IsFinal() bool { return finalBit(s) != 0 }

func (s Stage) IsTerminal() bool { return s == StageDone || s == StageCancelled }

// Label is the column title shown on the production board.
func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Stage) String() string { return string(s) }

func (s Stage) linearIndex() int {
	for i, l := range linearOrder {
		if l == s {
			return i
		}
	}
	return -1
}

// before reports whether s comes strictly earlier than other in the linear
// order. Non-linear stages are never before anything.
func (s Stage) before(other Stage) bool {
	i, j := s.linearIndex(), other.linearIndex()
	return i >= 0 && j >= 0 && i < j
}

// successor of TO_PHOTOGRAPH is the fan-out, not a stage.
func successor(s Stage) (Stage, bool) {
	i := s.linearIndex()
	if i < 0 || i+1 >= len(linearOrder) {
		return "", false
	}
	return linearOrder[i+1], true
}
