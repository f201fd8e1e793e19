package repository

import (
	"context"
	"time"

	"pesapal_gateway/internal/infrastructure/kvstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSettingsTableName = "gateway_settings"

type settingItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// SettingDynamoRepository is a kvstore.Store backed by a DynamoDB table, so
// the registered IPN id is shared by every instance of the service.
//
// Table requirements:
//   - PK: key (string)

type SettingDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ kvstore.Store = (*SettingDynamoRepository)(nil)

func NewSettingDynamoRepository(ddb *dynamodb.Client) *SettingDynamoRepository {
	return &SettingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SETTINGS_TABLE", defaultSettingsTableName),
	}
}

func (r *SettingDynamoRepository) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, err
	}
	if len(out.Item) == 0 {
		return "", false, nil
	}

	var it settingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return "", false, err
	}
	if it.Value == "" {
		return "", false, nil
	}
	return it.Value, true, nil
}

// Set overwrites any previous value for key.
func (r *SettingDynamoRepository) Set(ctx context.Context, key, value string) error {
	av, err := attributevalue.MarshalMap(settingItem{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
