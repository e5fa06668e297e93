package store

import (
	"context"
	"fmt"

	"github.com/uisync/selection-harness/servicedef"
)

// Settings holds connection details for the external stores.
type Settings struct {
	RedisURL         string
	ConsulAddress    string
	DynamoDBRegion   string
	DynamoDBEndpoint string
	DynamoDBTable    string
}

// Factory opens stores by kind. Memory stores opened from one Factory share data.
type Factory struct {
	settings Settings
	memory   *MemoryBackend
}

func NewFactory(settings Settings) *Factory {
	return &Factory{settings: settings, memory: NewMemoryBackend()}
}

// Open returns a store for the given kind and prefix. The caller must Close it.
func (f *Factory) Open(ctx context.Context, kind servicedef.StoreKind, prefix string) (SelectionStore, error) {
	switch kind {
	case servicedef.StoreMemory, "":
		return f.memory.Store(prefix), nil
	case servicedef.StoreRedis:
		return NewRedisStoreFromURL(f.settings.RedisURL, prefix)
	case servicedef.StoreConsul:
		return NewConsulStoreFromAddress(f.settings.ConsulAddress, prefix)
	case servicedef.StoreDynamoDB:
		client, err := NewDynamoDBClient(ctx, f.settings.DynamoDBRegion, f.settings.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		return NewDynamoDBStore(client, f.settings.DynamoDBTable, prefix), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// Capabilities lists the persistence capabilities this factory can serve, based on which
// settings are present.
func (f *Factory) Capabilities() []string {
	var caps []string
	if f.settings.RedisURL != "" {
		caps = append(caps, servicedef.CapabilityPersistenceRedis)
	}
	if f.settings.ConsulAddress != "" {
		caps = append(caps, servicedef.CapabilityPersistenceConsul)
	}
	if f.settings.DynamoDBEndpoint != "" || f.settings.DynamoDBRegion != "" {
		caps = append(caps, servicedef.CapabilityPersistenceDynamoDB)
	}
	return caps
}
