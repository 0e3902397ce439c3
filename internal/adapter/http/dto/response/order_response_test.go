package response

import (
	"testing"
	"time"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase"
)

func TestFromOrder(t *testing.T) {
	now := time.Now().UTC()
	o := entities.Order{
		ID:             "o-1",
		ProductName:    "Vente | Lampe",
		Quantity:       2,
		UnitsCompleted: 1,
		Ledger:         workflow.FanOut(workflow.NewFinalSet(workflow.StageToReview)),
		Version:        9,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res := FromOrder(o)
	if res.ID != "o-1" || !res.IsSale || res.Quantity != 2 || res.UnitsCompleted != 1 || res.Version != 9 {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.Status != "a_prendre_en_photo" || res.StatusLabel != "Photo" {
		t.Fatalf("unexpected status: %+v", res)
	}
	if len(res.ActiveStatuses) != 1 || res.ActiveStatuses[0] != "demande_avis" {
		t.Fatalf("unexpected active statuses: %v", res.ActiveStatuses)
	}

	res = FromOrder(entities.Order{ID: "o-2", Ledger: workflow.New()})
	if res.ActiveStatuses == nil || len(res.ActiveStatuses) != 0 {
		t.Fatalf("expected empty, non-nil active statuses")
	}
}

func TestFromStatusUpdate(t *testing.T) {
	res := FromStatusUpdate(usecase.StatusUpdate{
		Order:    entities.Order{ID: "o-1", Ledger: workflow.Linear(workflow.StageToEngrave)},
		Previous: workflow.Linear(workflow.StageToModel),
		Rule:     workflow.RuleAdvance,
	})
	if res.Rule != "advance" || !res.Changed || res.Previous != "a_modeliser_preparer" || res.Order.Status != "a_graver" {
		t.Fatalf("unexpected response: %+v", res)
	}

	res = FromStatusUpdate(usecase.StatusUpdate{Order: entities.Order{ID: "o-1"}, Rule: workflow.RuleNoop})
	if res.Changed {
		t.Fatalf("noop must not report a change")
	}
}

func TestFromBoard(t *testing.T) {
	res := FromBoard(entities.Order{ID: "o-1", Ledger: workflow.Linear(workflow.StageToEngrave)})
	if len(res.Stages) != 10 {
		t.Fatalf("expected 10 columns, got %d", len(res.Stages))
	}
	byStage := map[string]StageStateResponse{}
	for _, s := range res.Stages {
		byStage[s.Stage] = s
	}
	if !byStage["a_graver"].Current || !byStage["a_modeliser_preparer"].Checked || byStage["a_graver"].Checked {
		t.Fatalf("unexpected linear columns: %+v", res.Stages)
	}
	if !byStage["a_livrer"].Disabled {
		t.Fatalf("final stages must be disabled before photography")
	}
	if _, ok := byStage["termine"]; ok {
		t.Fatalf("DONE has no column")
	}
	if len(res.PrecedingStages) != 2 || res.PrecedingStages[1] != "a_modeliser_preparer" {
		t.Fatalf("unexpected preceding stages: %v", res.PrecedingStages)
	}
}
