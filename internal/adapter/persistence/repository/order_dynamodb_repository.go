package repository

import (
	"context"
	"strconv"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

const DefaultOrdersTableName = "orders"

// DynamoAPI is the part of *dynamodb.Client the repository uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type orderItem struct {
	ID             string   `dynamodbav:"id"`
	ProductName    string   `dynamodbav:"nom_commande"`
	Description    string   `dynamodbav:"description"`
	Quantity       int      `dynamodbav:"quantite"`
	UnitsCompleted int      `dynamodbav:"quantite_realisee"`
	Paid           bool     `dynamodbav:"paye"`
	Deadline       string   `dynamodbav:"deadline,omitempty"`
	OrderedAt      string   `dynamodbav:"date_commande"`
	Status         string   `dynamodbav:"statut_commande"`
	ActiveStatuses []string `dynamodbav:"statuts_actifs,omitempty"`
	Version        int64    `dynamodbav:"version"`
	CreatedAt      string   `dynamodbav:"created_at"`
	UpdatedAt      string   `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The status is stored in two columns, statut_commande and statuts_actifs,
// so that rows written by the previous application stay readable. Writes to
// an existing order are guarded by the version attribute; rows that predate
// it are treated as version 0.

type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	if tableName == "" {
		tableName = DefaultOrdersTableName
	}
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, errors.Wrap(err, "marshal order")
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, errors.Wrapf(err, "put order %s", o.ID)
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            orderKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, errors.Wrapf(err, "get order %s", id)
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Item)
}

// List scans the whole table. The workshop keeps a few hundred orders at
// most, which a paginated scan handles fine.
func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})

	var orders []entities.Order
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan orders")
		}
		for _, item := range page.Items {
			o, err := unmarshalOrder(item)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// SaveStatus writes the status columns, units completed and updated_at of o,
// and bumps the version, provided the stored version still equals
// expectedVersion. A missing order yields a zero Order; a version mismatch
// yields interfaces.ErrVersionConflict.
func (r *OrderDynamoRepository) SaveStatus(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error) {
	status, active := o.Ledger.Columns()

	names := map[string]string{
		"#status":     "statut_commande",
		"#active":     "statuts_actifs",
		"#units":      "quantite_realisee",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":active":     stageList(active),
		":units":      numberValue(int64(o.UnitsCompleted)),
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(o.UpdatedAt)},
	}
	update := "SET #status = :status, #active = :active, #units = :units, " +
		"#updated_at = :updated_at, #version = :next"

	out, err := r.ddb.UpdateItem(ctx, versionedUpdate(r.tableName, o.ID, update, names, values, expectedVersion))
	if err != nil {
		return entities.Order{}, r.mapGuardedError(err, "update order %s status", o.ID)
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Attributes)
}

// SaveDetails writes the editable fields of o (name, description, quantity,
// units completed, paid flag, deadline, order date) under the same version
// guard as SaveStatus. A nil deadline removes the attribute.
func (r *OrderDynamoRepository) SaveDetails(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error) {
	names := map[string]string{
		"#name":       "nom_commande",
		"#desc":       "description",
		"#qty":        "quantite",
		"#units":      "quantite_realisee",
		"#paid":       "paye",
		"#ordered_at": "date_commande",
		"#deadline":   "deadline",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":name":       &types.AttributeValueMemberS{Value: o.ProductName},
		":desc":       &types.AttributeValueMemberS{Value: o.Description},
		":qty":        numberValue(int64(o.Quantity)),
		":units":      numberValue(int64(o.UnitsCompleted)),
		":paid":       &types.AttributeValueMemberBOOL{Value: o.Paid},
		":ordered_at": &types.AttributeValueMemberS{Value: formatTime(o.OrderedAt)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(o.UpdatedAt)},
	}
	update := "SET #name = :name, #desc = :desc, #qty = :qty, #units = :units, #paid = :paid, " +
		"#ordered_at = :ordered_at, #updated_at = :updated_at, #version = :next"
	if o.Deadline != nil {
		update += ", #deadline = :deadline"
		values[":deadline"] = &types.AttributeValueMemberS{Value: formatTime(*o.Deadline)}
	} else {
		update += " REMOVE #deadline"
	}

	out, err := r.ddb.UpdateItem(ctx, versionedUpdate(r.tableName, o.ID, update, names, values, expectedVersion))
	if err != nil {
		return entities.Order{}, r.mapGuardedError(err, "update order %s", o.ID)
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Attributes)
}

// Delete removes an order and returns it as it was. A missing order yields
// a zero Order.
func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 orderKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, errors.Wrapf(err, "delete order %s", id)
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Attributes)
}

// versionedUpdate completes an UpdateItem input with the version guard.
// expectedVersion 0 also matches rows that have no version attribute yet.
func versionedUpdate(
	table, id, update string,
	names map[string]string,
	values map[string]types.AttributeValue,
	expectedVersion int64,
) *dynamodb.UpdateItemInput {
	names["#id"] = "id"
	names["#version"] = "version"
	values[":expected"] = numberValue(expectedVersion)
	values[":next"] = numberValue(expectedVersion + 1)

	cond := "attribute_exists(#id) AND #version = :expected"
	if expectedVersion == 0 {
		cond = "attribute_exists(#id) AND (attribute_not_exists(#version) OR #version = :expected)"
	}

	return &dynamodb.UpdateItemInput{
		TableName:                           aws.String(table),
		Key:                                 orderKey(id),
		ConditionExpression:                 aws.String(cond),
		UpdateExpression:                    aws.String(update),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}
}

// mapGuardedError tells a missing order (nil error, caller sees no
// attributes) from a version conflict.
func (r *OrderDynamoRepository) mapGuardedError(err error, format string, args ...any) error {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		if len(cfe.Item) == 0 {
			return nil
		}
		return interfaces.ErrVersionConflict
	}
	return errors.Wrapf(err, format, args...)
}

func orderKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalOrder(av map[string]types.AttributeValue) (entities.Order, error) {
	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Order{}, errors.Wrap(err, "unmarshal order")
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	status, active := o.Ledger.Columns()
	it := orderItem{
		ID:             o.ID,
		ProductName:    o.ProductName,
		Description:    o.Description,
		Quantity:       o.Quantity,
		UnitsCompleted: o.UnitsCompleted,
		Paid:           o.Paid,
		OrderedAt:      formatTime(o.OrderedAt),
		Status:         string(status),
		ActiveStatuses: stageStrings(active),
		Version:        o.Version,
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
	}
	if o.Deadline != nil {
		it.Deadline = formatTime(*o.Deadline)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	active := make([]workflow.Stage, 0, len(it.ActiveStatuses))
	for _, s := range it.ActiveStatuses {
		active = append(active, workflow.Stage(s))
	}
	o := entities.Order{
		ID:             it.ID,
		ProductName:    it.ProductName,
		Description:    it.Description,
		Quantity:       it.Quantity,
		UnitsCompleted: it.UnitsCompleted,
		Paid:           it.Paid,
		OrderedAt:      parseTime(it.OrderedAt),
		Ledger:         workflow.FromColumns(workflow.Stage(it.Status), active),
		Version:        it.Version,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
	if it.Deadline != "" {
		d := parseTime(it.Deadline)
		o.Deadline = &d
	}
	return o
}

func stageStrings(stages []workflow.Stage) []string {
	if len(stages) == 0 {
		return nil
	}
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}

func stageList(stages []workflow.Stage) *types.AttributeValueMemberL {
	l := &types.AttributeValueMemberL{Value: make([]types.AttributeValue, 0, len(stages))}
	for _, s := range stages {
		l.Value = append(l.Value, &types.AttributeValueMemberS{Value: string(s)})
	}
	return l
}

func numberValue(v int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}
