package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Schema of the DynamoDB table.
const (
	DefaultDynamoDBTable = "selection-harness"
	DynamoDBPartitionKey = "namespace"
	DynamoDBSortKey      = "key"
	DynamoDBItemAttr     = "item"
)

// DynamoDBAPI is the part of *dynamodb.Client that DynamoDBStore uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (
		*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (
		*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (
		*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (
		*dynamodb.QueryOutput, error)
}

// DynamoDBStore keeps one item per component, with the partition key "{prefix}:selection" and
// the component ID as sort key.
type DynamoDBStore struct {
	client    DynamoDBAPI
	table     string
	namespace string
}

func NewDynamoDBStore(client DynamoDBAPI, table, prefix string) *DynamoDBStore {
	if table == "" {
		table = DefaultDynamoDBTable
	}
	return &DynamoDBStore{client: client, table: table, namespace: DynamoDBNamespace(prefix)}
}

// NewDynamoDBClient loads the default AWS configuration, optionally overriding the region and
// the endpoint (for a local DynamoDB).
func NewDynamoDBClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// DynamoDBNamespace is the partition key value for a prefix.
func DynamoDBNamespace(prefix string) string {
	return prefix + ":selection"
}

func (s *DynamoDBStore) itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		DynamoDBPartitionKey: &types.AttributeValueMemberS{Value: s.namespace},
		DynamoDBSortKey:      &types.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoDBStore) Load(ctx context.Context, id string) ([]string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key:            s.itemKey(id),
	})
	if err != nil {
		return nil, false, err
	}
	if out == nil || out.Item == nil {
		return nil, false, nil
	}
	attr, ok := out.Item[DynamoDBItemAttr].(*types.AttributeValueMemberS)
	if !ok {
		return nil, false, errors.New("stored selection item has no string attribute " + DynamoDBItemAttr)
	}
	selected, err := DecodeSelection(attr.Value)
	return selected, err == nil, err
}

func (s *DynamoDBStore) Save(ctx context.Context, id string, selected []string) error {
	data, err := EncodeSelection(selected)
	if err != nil {
		return err
	}
	item := s.itemKey(id)
	item[DynamoDBItemAttr] = &types.AttributeValueMemberS{Value: data}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(s.table), Item: item})
	return err
}

func (s *DynamoDBStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.itemKey(id),
	})
	return err
}

func (s *DynamoDBStore) Reset(ctx context.Context) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			ConsistentRead:         aws.Bool(true),
			KeyConditionExpression: aws.String("#ns = :ns"),
			ExpressionAttributeNames: map[string]string{
				"#ns": DynamoDBPartitionKey,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":ns": &types.AttributeValueMemberS{Value: s.namespace},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			sortKey, ok := item[DynamoDBSortKey].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			if err := s.Delete(ctx, sortKey.Value); err != nil {
				return err
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (s *DynamoDBStore) Close() error { return nil }
