package selectiontests

import (
	"context"
	"errors"

	"github.com/uisync/selection-harness/servicedef"
	"github.com/uisync/selection-harness/store"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	consul "github.com/hashicorp/consul/api"
	"github.com/redis/go-redis/v9"
)

// PersistenceInspector reads and writes a store's data directly, bypassing the component
// service, so tests can check what the service saved and plant data for it to restore.
type PersistenceInspector interface {
	Kind() servicedef.StoreKind
	Read(prefix, id string) ([]string, bool, error)
	Write(prefix, id string, selected []string) error
	Reset(prefix string) error
}

// PersistenceInspectors are the inspectors available to this test run, by store kind.
type PersistenceInspectors map[servicedef.StoreKind]PersistenceInspector

// PersistenceSettings says where the harness can reach the same databases as the service. An
// empty setting means that store's data is not inspected.
type PersistenceSettings struct {
	RedisURL         string
	ConsulAddress    string
	DynamoDBEndpoint string
	DynamoDBRegion   string
	DynamoDBTable    string
}

// NewPersistenceInspectors connects to every configured database.
func NewPersistenceInspectors(settings PersistenceSettings) (PersistenceInspectors, error) {
	ret := make(PersistenceInspectors)
	if settings.RedisURL != "" {
		opts, err := redis.ParseURL(settings.RedisURL)
		if err != nil {
			return nil, err
		}
		ret[servicedef.StoreRedis] = &RedisInspector{redis: redis.NewClient(opts)}
	}
	if settings.ConsulAddress != "" {
		config := consul.DefaultConfig()
		config.Address = settings.ConsulAddress
		client, err := consul.NewClient(config)
		if err != nil {
			return nil, err
		}
		ret[servicedef.StoreConsul] = &ConsulInspector{consul: client}
	}
	if settings.DynamoDBEndpoint != "" {
		inspector, err := newDynamoDBInspector(settings)
		if err != nil {
			return nil, err
		}
		ret[servicedef.StoreDynamoDB] = inspector
	}
	return ret, nil
}

// RedisInspector reads the hash that the service's Redis store writes.
type RedisInspector struct {
	redis *redis.Client
}

func (r *RedisInspector) Kind() servicedef.StoreKind { return servicedef.StoreRedis }

func (r *RedisInspector) Read(prefix, id string) ([]string, bool, error) {
	data, err := r.redis.HGet(context.Background(), store.RedisHashKey(prefix), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	selected, err := store.DecodeSelection(data)
	return selected, err == nil, err
}

func (r *RedisInspector) Write(prefix, id string, selected []string) error {
	data, err := store.EncodeSelection(selected)
	if err != nil {
		return err
	}
	return r.redis.HSet(context.Background(), store.RedisHashKey(prefix), id, data).Err()
}

func (r *RedisInspector) Reset(prefix string) error {
	return r.redis.Del(context.Background(), store.RedisHashKey(prefix)).Err()
}

// ConsulInspector reads the keys that the service's Consul store writes.
type ConsulInspector struct {
	consul *consul.Client
}

func (c *ConsulInspector) Kind() servicedef.StoreKind { return servicedef.StoreConsul }

func (c *ConsulInspector) Read(prefix, id string) ([]string, bool, error) {
	pair, _, err := c.consul.KV().Get(store.ConsulKey(prefix, id), nil)
	if err != nil || pair == nil {
		return nil, false, err
	}
	selected, err := store.DecodeSelection(string(pair.Value))
	return selected, err == nil, err
}

func (c *ConsulInspector) Write(prefix, id string, selected []string) error {
	data, err := store.EncodeSelection(selected)
	if err != nil {
		return err
	}
	_, err = c.consul.KV().Put(&consul.KVPair{Key: store.ConsulKey(prefix, id), Value: []byte(data)}, nil)
	return err
}

func (c *ConsulInspector) Reset(prefix string) error {
	_, err := c.consul.KV().DeleteTree(prefix+"/", nil)
	return err
}

// DynamoDBInspector reads the table that the service's DynamoDB store writes. It creates the
// table if it does not exist yet.
type DynamoDBInspector struct {
	dynamodb *dynamodb.DynamoDB
	table    string
}

func newDynamoDBInspector(settings PersistenceSettings) (*DynamoDBInspector, error) {
	region := settings.DynamoDBRegion
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(settings.DynamoDBEndpoint),
		// a local DynamoDB accepts any credentials
		Credentials: credentials.NewStaticCredentials("dummy", "dummy", ""),
	})
	if err != nil {
		return nil, err
	}
	table := settings.DynamoDBTable
	if table == "" {
		table = store.DefaultDynamoDBTable
	}
	d := &DynamoDBInspector{dynamodb: dynamodb.New(sess), table: table}
	return d, d.ensureTable()
}

func (d *DynamoDBInspector) Kind() servicedef.StoreKind { return servicedef.StoreDynamoDB }

func (d *DynamoDBInspector) ensureTable() error {
	_, err := d.dynamodb.CreateTable(&dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String(store.DynamoDBPartitionKey), AttributeType: aws.String("S")},
			{AttributeName: aws.String(store.DynamoDBSortKey), AttributeType: aws.String("S")},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String(store.DynamoDBPartitionKey), KeyType: aws.String("HASH")},
			{AttributeName: aws.String(store.DynamoDBSortKey), KeyType: aws.String("RANGE")},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
		TableName: aws.String(d.table),
	})
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
		return nil
	}
	return err
}

func (d *DynamoDBInspector) key(prefix, id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		store.DynamoDBPartitionKey: {S: aws.String(store.DynamoDBNamespace(prefix))},
		store.DynamoDBSortKey:      {S: aws.String(id)},
	}
}

func (d *DynamoDBInspector) Read(prefix, id string) ([]string, bool, error) {
	result, err := d.dynamodb.GetItem(&dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		ConsistentRead: aws.Bool(true),
		Key:            d.key(prefix, id),
	})
	if err != nil || result == nil || result.Item == nil {
		return nil, false, err
	}
	attr := result.Item[store.DynamoDBItemAttr]
	if attr == nil || attr.S == nil {
		return nil, false, nil
	}
	selected, err := store.DecodeSelection(*attr.S)
	return selected, err == nil, err
}

func (d *DynamoDBInspector) Write(prefix, id string, selected []string) error {
	data, err := store.EncodeSelection(selected)
	if err != nil {
		return err
	}
	item := d.key(prefix, id)
	item[store.DynamoDBItemAttr] = &dynamodb.AttributeValue{S: aws.String(data)}
	_, err = d.dynamodb.PutItem(&dynamodb.PutItemInput{TableName: aws.String(d.table), Item: item})
	return err
}

func (d *DynamoDBInspector) Reset(prefix string) error {
	query := &dynamodb.QueryInput{
		TableName:      aws.String(d.table),
		ConsistentRead: aws.Bool(true),
		KeyConditions: map[string]*dynamodb.Condition{
			store.DynamoDBPartitionKey: {
				ComparisonOperator: aws.String(dynamodb.ComparisonOperatorEq),
				AttributeValueList: []*dynamodb.AttributeValue{{S: aws.String(store.DynamoDBNamespace(prefix))}},
			},
		},
	}
	var deleteErr error
	err := d.dynamodb.QueryPages(query, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		for _, item := range page.Items {
			_, deleteErr = d.dynamodb.DeleteItem(&dynamodb.DeleteItemInput{
				TableName: aws.String(d.table),
				Key: map[string]*dynamodb.AttributeValue{
					store.DynamoDBPartitionKey: item[store.DynamoDBPartitionKey],
					store.DynamoDBSortKey:      item[store.DynamoDBSortKey],
				},
			})
			if deleteErr != nil {
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	return deleteErr
}
