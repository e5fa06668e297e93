package store

import (
	"context"

	consul "github.com/hashicorp/consul/api"
)

// ConsulStore keeps each selection at "{prefix}/selection/{id}" in the KV store.
type ConsulStore struct {
	kv     *consul.KV
	prefix string
}

func NewConsulStore(client *consul.Client, prefix string) *ConsulStore {
	return &ConsulStore{kv: client.KV(), prefix: prefix}
}

// NewConsulStoreFromAddress connects to the agent at address, or the default agent if empty.
func NewConsulStoreFromAddress(address, prefix string) (*ConsulStore, error) {
	config := consul.DefaultConfig()
	if address != "" {
		config.Address = address
	}
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return NewConsulStore(client, prefix), nil
}

// ConsulKey is where the selection for an ID is kept.
func ConsulKey(prefix, id string) string {
	return consulTree(prefix) + id
}

func consulTree(prefix string) string {
	return prefix + "/selection/"
}

func (s *ConsulStore) Load(ctx context.Context, id string) ([]string, bool, error) {
	pair, _, err := s.kv.Get(ConsulKey(s.prefix, id), (&consul.QueryOptions{}).WithContext(ctx))
	if err != nil || pair == nil {
		return nil, false, err
	}
	selected, err := DecodeSelection(string(pair.Value))
	return selected, err == nil, err
}

func (s *ConsulStore) Save(ctx context.Context, id string, selected []string) error {
	data, err := EncodeSelection(selected)
	if err != nil {
		return err
	}
	pair := &consul.KVPair{Key: ConsulKey(s.prefix, id), Value: []byte(data)}
	_, err = s.kv.Put(pair, (&consul.WriteOptions{}).WithContext(ctx))
	return err
}

func (s *ConsulStore) Delete(ctx context.Context, id string) error {
	_, err := s.kv.Delete(ConsulKey(s.prefix, id), (&consul.WriteOptions{}).WithContext(ctx))
	return err
}

func (s *ConsulStore) Reset(ctx context.Context) error {
	_, err := s.kv.DeleteTree(consulTree(s.prefix), (&consul.WriteOptions{}).WithContext(ctx))
	return err
}

func (s *ConsulStore) Close() error { return nil }
