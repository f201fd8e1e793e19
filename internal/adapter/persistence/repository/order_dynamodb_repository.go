package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"pesapal_gateway/internal/domain/entities"
	"pesapal_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName       = "orders"
	ordersMerchantReferenceIndex = "merchant_reference-index"
	orderTrackingIDAttribute     = "order_tracking_id"
)

type orderItem struct {
	OrderTrackingID   string `dynamodbav:"order_tracking_id"`
	MerchantReference string `dynamodbav:"merchant_reference"`
	Amount            string `dynamodbav:"amount"`
	Currency          string `dynamodbav:"currency"`
	Description       string `dynamodbav:"description"`
	PaymentMethod     string `dynamodbav:"payment_method,omitempty"`
	CallbackURL       string `dynamodbav:"callback_url"`
	NotificationID    string `dynamodbav:"notification_id,omitempty"`
	RedirectURL       string `dynamodbav:"redirect_url"`
	Status            string `dynamodbav:"status"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
	GatewayPayloadRaw string `dynamodbav:"gateway_payload_raw,omitempty"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: order_tracking_id (string)
//   - GSI: merchant_reference-index (PK: merchant_reference)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := toOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": orderTrackingIDAttribute,
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByTrackingID(ctx context.Context, orderTrackingID string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			orderTrackingIDAttribute: &types.AttributeValueMemberS{Value: orderTrackingID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByMerchantReference(ctx context.Context, merchantReference string) ([]entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersMerchantReferenceIndex),
		KeyConditionExpression: aws.String("merchant_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: merchantReference},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Order, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromOrderItem(it))
	}
	return items, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, orderTrackingID string, status entities.OrderStatus, payload json.RawMessage) (entities.Order, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	expr := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         orderTrackingIDAttribute,
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if len(payload) > 0 {
		expr += ", #payload = :payload"
		vals[":payload"] = &types.AttributeValueMemberS{Value: string(payload)}
		names["#payload"] = "gateway_payload_raw"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			orderTrackingIDAttribute: &types.AttributeValueMemberS{Value: orderTrackingID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		OrderTrackingID:   o.OrderTrackingID,
		MerchantReference: o.MerchantReference,
		Amount:            floatToString(o.Amount),
		Currency:          o.Currency,
		Description:       o.Description,
		PaymentMethod:     o.PaymentMethod,
		CallbackURL:       o.CallbackURL,
		NotificationID:    o.NotificationID,
		RedirectURL:       o.RedirectURL,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         o.UpdatedAt.UTC().Format(time.RFC3339Nano),
		GatewayPayloadRaw: string(o.GatewayPayloadRaw),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	o := entities.Order{
		OrderTrackingID:   it.OrderTrackingID,
		MerchantReference: it.MerchantReference,
		Amount:            amount,
		Currency:          it.Currency,
		Description:       it.Description,
		PaymentMethod:     it.PaymentMethod,
		CallbackURL:       it.CallbackURL,
		NotificationID:    it.NotificationID,
		RedirectURL:       it.RedirectURL,
		Status:            entities.OrderStatus(it.Status),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
	if it.GatewayPayloadRaw != "" {
		o.GatewayPayloadRaw = json.RawMessage(it.GatewayPayloadRaw)
	}
	return o
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
