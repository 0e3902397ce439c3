package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo keeps items in memory. UpdateItem returns updateOut/updateErr
// when either is set; otherwise it evaluates the version guard against the
// stored item and only bumps its version attribute.
type fakeDynamo struct {
	items     map[string]map[string]types.AttributeValue
	putErr    error
	lastPut   *dynamodb.PutItemInput
	lastUpd   *dynamodb.UpdateItemInput
	lastDel   *dynamodb.DeleteItemInput
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
	scanPages [][]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if _, ok := f.items[id]; ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpd = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}

	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}
	stored, hasVersion := item["version"].(*types.AttributeValueMemberN)
	expected := in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value
	legacyAllowed := strings.Contains(aws.ToString(in.ConditionExpression), "attribute_not_exists(#version)")
	if !(hasVersion && stored.Value == expected) && !(!hasVersion && legacyAllowed) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed"), Item: item}
	}
	item["version"] = in.ExpressionAttributeValues[":next"]
	return &dynamodb.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.lastDel = in
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	page := 0
	if in.ExclusiveStartKey != nil {
		page = 1
	}
	out := &dynamodb.ScanOutput{Items: f.scanPages[page]}
	if page+1 < len(f.scanPages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "cursor"}}
	}
	return out, nil
}

func sampleOrder() entities.Order {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:             "o-1",
		ProductName:    "Plaque",
		Description:    "chêne, 20x10",
		Quantity:       5,
		UnitsCompleted: 5,
		Paid:           true,
		Deadline:       &deadline,
		OrderedAt:      created,
		Ledger:         workflow.FanOut(workflow.NewFinalSet(workflow.StageToDeliver, workflow.StageToInvoice)),
		Version:        3,
		CreatedAt:      created,
		UpdatedAt:      created.Add(time.Hour),
	}
}

func TestOrderDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewOrderDynamoRepository(ddb, "")
	o := sampleOrder()

	if _, err := repo.Create(context.Background(), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(ddb.lastPut.TableName) != DefaultOrdersTableName {
		t.Fatalf("unexpected table %s", aws.ToString(ddb.lastPut.TableName))
	}
	if s := ddb.lastPut.Item["statut_commande"].(*types.AttributeValueMemberS).Value; s != "a_prendre_en_photo" {
		t.Fatalf("unexpected statut_commande %s", s)
	}

	got, err := repo.GetByID(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != o.ID || got.Quantity != 5 || got.UnitsCompleted != 5 || !got.Paid || got.Version != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got.Ledger.Equal(o.Ledger) {
		t.Fatalf("expected ledger %s got %s", o.Ledger, got.Ledger)
	}
	if got.Deadline == nil || !got.Deadline.Equal(*o.Deadline) || !got.CreatedAt.Equal(o.CreatedAt) {
		t.Fatalf("unexpected timestamps: %+v", got)
	}

	t.Run("duplicate id", func(t *testing.T) {
		if _, err := repo.Create(context.Background(), o); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), "nope")
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero order, got %+v %v", got, err)
		}
	})
}

func TestOrderDynamoRepository_ReadsLegacyRows(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.items["old"] = map[string]types.AttributeValue{
		"id":              &types.AttributeValueMemberS{Value: "old"},
		"nom_commande":    &types.AttributeValueMemberS{Value: "Vente | Lampe"},
		"quantite":        &types.AttributeValueMemberN{Value: "1"},
		"date_commande":   &types.AttributeValueMemberS{Value: "2024-05-02"},
		"statut_commande": &types.AttributeValueMemberS{Value: "termine"},
		"statuts_actifs":  &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: "a_livrer"}}},
	}
	repo := NewOrderDynamoRepository(ddb, "orders")

	got, err := repo.GetByID(context.Background(), "old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Ledger.Phase() != workflow.PhaseDone || !got.Ledger.Active().Empty() {
		t.Fatalf("expected normalised done ledger, got %s", got.Ledger)
	}
	if got.OrderedAt.Year() != 2024 || got.Deadline != nil || got.Version != 0 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestOrderDynamoRepository_List(t *testing.T) {
	ddb := newFakeDynamo()
	a := sampleOrder()
	b := sampleOrder()
	b.ID = "o-2"
	b.Ledger = workflow.Cancelled()
	avA, _ := attributevalue.MarshalMap(toOrderItem(a))
	avB, _ := attributevalue.MarshalMap(toOrderItem(b))
	ddb.scanPages = [][]map[string]types.AttributeValue{{avA}, {avB}}

	got, err := NewOrderDynamoRepository(ddb, "orders").List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "o-1" || got[1].Ledger.Phase() != workflow.PhaseCancelled {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestOrderDynamoRepository_SaveStatus(t *testing.T) {
	t.Run("writes both status columns and bumps version", func(t *testing.T) {
		ddb := newFakeDynamo()
		o := sampleOrder()
		saved := o
		saved.Version = 4
		av, _ := attributevalue.MarshalMap(toOrderItem(saved))
		ddb.updateOut = &dynamodb.UpdateItemOutput{Attributes: av}

		got, err := NewOrderDynamoRepository(ddb, "orders").SaveStatus(context.Background(), o, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != 4 {
			t.Fatalf("expected version 4 got %d", got.Version)
		}
		vals := ddb.lastUpd.ExpressionAttributeValues
		if vals[":expected"].(*types.AttributeValueMemberN).Value != "3" || vals[":next"].(*types.AttributeValueMemberN).Value != "4" {
			t.Fatalf("unexpected version guard: %+v", vals)
		}
		active := vals[":active"].(*types.AttributeValueMemberL).Value
		if len(active) != 2 || active[0].(*types.AttributeValueMemberS).Value != "a_livrer" {
			t.Fatalf("unexpected statuts_actifs: %+v", active)
		}
		if vals[":units"].(*types.AttributeValueMemberN).Value != "5" {
			t.Fatalf("unexpected units")
		}
	})

	t.Run("expected version 0 accepts rows without a version", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.items["old"] = map[string]types.AttributeValue{
			"id":              &types.AttributeValueMemberS{Value: "old"},
			"nom_commande":    &types.AttributeValueMemberS{Value: "Lampe"},
			"quantite":        &types.AttributeValueMemberN{Value: "1"},
			"statut_commande": &types.AttributeValueMemberS{Value: "a_graver"},
		}
		repo := NewOrderDynamoRepository(ddb, "orders")

		o, err := repo.GetByID(context.Background(), "old")
		if err != nil || o.Version != 0 {
			t.Fatalf("expected legacy row at version 0, got %+v %v", o, err)
		}
		o.Ledger = workflow.Linear(workflow.StageToFinish)

		saved, err := repo.SaveStatus(context.Background(), o, o.Version)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Version != 1 {
			t.Fatalf("expected version 1 after first write, got %d", saved.Version)
		}
		cond := aws.ToString(ddb.lastUpd.ConditionExpression)
		if cond != "attribute_exists(#id) AND (attribute_not_exists(#version) OR #version = :expected)" {
			t.Fatalf("unexpected condition %q", cond)
		}

		// The row is now versioned, so a stale writer still at 0 conflicts.
		if _, err := repo.SaveStatus(context.Background(), o, 0); !errors.Is(err, interfaces.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("expected version above 0 requires the attribute", func(t *testing.T) {
		ddb := newFakeDynamo()
		av, _ := attributevalue.MarshalMap(toOrderItem(sampleOrder()))
		ddb.items["o-1"] = av

		if _, err := NewOrderDynamoRepository(ddb, "orders").SaveStatus(context.Background(), sampleOrder(), 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cond := aws.ToString(ddb.lastUpd.ConditionExpression); cond != "attribute_exists(#id) AND #version = :expected" {
			t.Fatalf("unexpected condition %q", cond)
		}
	})

	t.Run("version conflict", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateErr = &types.ConditionalCheckFailedException{
			Message: aws.String("conditional request failed"),
			Item:    map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "o-1"}},
		}
		_, err := NewOrderDynamoRepository(ddb, "orders").SaveStatus(context.Background(), sampleOrder(), 3)
		if !errors.Is(err, interfaces.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		ddb := newFakeDynamo()
		ddb.updateErr = &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
		got, err := NewOrderDynamoRepository(ddb, "orders").SaveStatus(context.Background(), sampleOrder(), 3)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero order, got %+v %v", got, err)
		}
	})

	t.Run("other error is wrapped", func(t *testing.T) {
		ddb := newFakeDynamo()
		cause := errors.New("throttled")
		ddb.updateErr = cause
		_, err := NewOrderDynamoRepository(ddb, "orders").SaveStatus(context.Background(), sampleOrder(), 3)
		if !errors.Is(err, cause) || err.Error() == cause.Error() {
			t.Fatalf("expected wrapped throttled error, got %v", err)
		}
	})
}

func TestOrderDynamoRepository_SaveDetails(t *testing.T) {
	t.Run("sets editable fields and keeps the status columns", func(t *testing.T) {
		ddb := newFakeDynamo()
		av, _ := attributevalue.MarshalMap(toOrderItem(sampleOrder()))
		ddb.items["o-1"] = av

		o := sampleOrder()
		o.UnitsCompleted = 2
		o.Paid = false
		saved, err := NewOrderDynamoRepository(ddb, "orders").SaveDetails(context.Background(), o, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Version != 4 {
			t.Fatalf("expected version 4 got %d", saved.Version)
		}
		upd := aws.ToString(ddb.lastUpd.UpdateExpression)
		if strings.Contains(upd, "#status") || strings.Contains(upd, "#active") {
			t.Fatalf("status columns must not be written: %s", upd)
		}
		if !strings.Contains(upd, "#deadline = :deadline") {
			t.Fatalf("expected deadline set: %s", upd)
		}
		vals := ddb.lastUpd.ExpressionAttributeValues
		if vals[":units"].(*types.AttributeValueMemberN).Value != "2" || vals[":paid"].(*types.AttributeValueMemberBOOL).Value {
			t.Fatalf("unexpected values: %+v", vals)
		}
	})

	t.Run("nil deadline removes the attribute", func(t *testing.T) {
		ddb := newFakeDynamo()
		av, _ := attributevalue.MarshalMap(toOrderItem(sampleOrder()))
		ddb.items["o-1"] = av

		o := sampleOrder()
		o.Deadline = nil
		if _, err := NewOrderDynamoRepository(ddb, "orders").SaveDetails(context.Background(), o, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		upd := aws.ToString(ddb.lastUpd.UpdateExpression)
		if !strings.HasSuffix(upd, "REMOVE #deadline") {
			t.Fatalf("expected REMOVE #deadline: %s", upd)
		}
		if _, ok := ddb.lastUpd.ExpressionAttributeValues[":deadline"]; ok {
			t.Fatalf("unused :deadline value would be rejected")
		}
	})

	t.Run("missing order", func(t *testing.T) {
		got, err := NewOrderDynamoRepository(newFakeDynamo(), "orders").SaveDetails(context.Background(), sampleOrder(), 3)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero order, got %+v %v", got, err)
		}
	})

	t.Run("stale version", func(t *testing.T) {
		ddb := newFakeDynamo()
		av, _ := attributevalue.MarshalMap(toOrderItem(sampleOrder()))
		ddb.items["o-1"] = av
		if _, err := NewOrderDynamoRepository(ddb, "orders").SaveDetails(context.Background(), sampleOrder(), 2); !errors.Is(err, interfaces.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})
}

func TestOrderDynamoRepository_Delete(t *testing.T) {
	ddb := newFakeDynamo()
	av, _ := attributevalue.MarshalMap(toOrderItem(sampleOrder()))
	ddb.items["o-1"] = av
	repo := NewOrderDynamoRepository(ddb, "orders")

	deleted, err := repo.Delete(context.Background(), "o-1")
	if err != nil || deleted.ID != "o-1" {
		t.Fatalf("expected deleted order, got %+v %v", deleted, err)
	}
	if ddb.lastDel.ReturnValues != types.ReturnValueAllOld {
		t.Fatalf("expected ALL_OLD return values")
	}
	if _, ok := ddb.items["o-1"]; ok {
		t.Fatalf("item should be gone")
	}

	again, err := repo.Delete(context.Background(), "o-1")
	if err != nil || again.ID != "" {
		t.Fatalf("expected zero order for missing id, got %+v %v", again, err)
	}
}
