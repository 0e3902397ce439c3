package entities

import (
	"testing"

	"atelier_lag/internal/domain/workflow"
)

func TestIsSaleProductName(t *testing.T) {
	cases := map[string]bool{
		"Vente | Plaque chêne":   true,
		"  Vente | Plaque chêne": true,
		"Vente |Plaque":          false,
		"Plaque Vente | x":       false,
		"":                       false,
	}
	for name, want := range cases {
		if got := IsSaleProductName(name); got != want {
			t.Fatalf("%q: expected %v got %v", name, want, got)
		}
	}
}

func TestOrder_CopyName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Plaque chêne", "Copie | Plaque chêne"},
		{"Vente | Plaque chêne", "Vente | Copie | Plaque chêne"},
		{"  Vente |   Plaque", "Vente | Copie | Plaque"},
		{"", "Copie | Commande sans nom"},
	}
	for _, tc := range cases {
		if got := (Order{ProductName: tc.name}).CopyName(); got != tc.want {
			t.Fatalf("%q: expected %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestOrder_Finished(t *testing.T) {
	if (Order{Ledger: workflow.New()}).Finished() {
		t.Fatalf("new order is not finished")
	}
	if (Order{Ledger: workflow.FanOut(workflow.AllFinal)}).Finished() {
		t.Fatalf("fanned-out order is not finished")
	}
	if !(Order{Ledger: workflow.Done()}).Finished() || !(Order{Ledger: workflow.Cancelled()}).Finished() {
		t.Fatalf("done and cancelled orders are finished")
	}
	if !(Order{ProductName: "Vente | x"}).IsSale() {
		t.Fatalf("expected sale order")
	}
}
