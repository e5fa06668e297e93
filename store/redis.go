package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps all selections for a prefix in one hash, "{prefix}:selection", with a field
// per component ID.
type RedisStore struct {
	client    redis.UniversalClient
	hashKey   string
	ownClient bool
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, hashKey: RedisHashKey(prefix)}
}

// NewRedisStoreFromURL connects using a redis:// URL. Close disconnects.
func NewRedisStoreFromURL(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	s := NewRedisStore(redis.NewClient(opts), prefix)
	s.ownClient = true
	return s, nil
}

// RedisHashKey is the hash that holds the selections for a prefix.
func RedisHashKey(prefix string) string {
	return prefix + ":selection"
}

func (s *RedisStore) Load(ctx context.Context, id string) ([]string, bool, error) {
	data, err := s.client.HGet(ctx, s.hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	selected, err := DecodeSelection(data)
	return selected, err == nil, err
}

func (s *RedisStore) Save(ctx context.Context, id string, selected []string) error {
	data, err := EncodeSelection(selected)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.hashKey, id, data).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.HDel(ctx, s.hashKey, id).Err()
}

func (s *RedisStore) Reset(ctx context.Context) error {
	return s.client.Del(ctx, s.hashKey).Err()
}

func (s *RedisStore) Close() error {
	if s.ownClient {
		return s.client.Close()
	}
	return nil
}
