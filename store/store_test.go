package store

import (
	"context"
	"testing"

	"github.com/uisync/selection-harness/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every SelectionStore must have.
func runStoreContract(t *testing.T, s SelectionStore) {
	ctx := context.Background()

	_, found, err := s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "c1", []string{"Second", "First"}))
	selected, found, err := s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Second", "First"}, selected)

	require.NoError(t, s.Save(ctx, "c1", nil))
	selected, found, err = s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{}, selected)

	require.NoError(t, s.Save(ctx, "c2", []string{"x"}))
	require.NoError(t, s.Delete(ctx, "c1"))
	_, found, _ = s.Load(ctx, "c1")
	assert.False(t, found)

	require.NoError(t, s.Reset(ctx))
	_, found, _ = s.Load(ctx, "c2")
	assert.False(t, found)

	assert.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryBackend().Store("test"))
}

func TestMemoryStoresSharePrefixesSeparately(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a, b, a2 := backend.Store("a"), backend.Store("b"), backend.Store("a")

	require.NoError(t, a.Save(ctx, "c", []string{"1"}))
	require.NoError(t, b.Save(ctx, "c", []string{"2"}))

	selected, _, _ := a2.Load(ctx, "c")
	assert.Equal(t, []string{"1"}, selected)

	require.NoError(t, a.Reset(ctx))
	_, found, _ := a2.Load(ctx, "c")
	assert.False(t, found)
	selected, _, _ = b.Load(ctx, "c")
	assert.Equal(t, []string{"2"}, selected)
}

func TestMemoryStorePrefixesContainingSeparatorDoNotCollide(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	nested, outer := backend.Store("a:b"), backend.Store("a")

	require.NoError(t, nested.Save(ctx, "c", []string{"nested"}))
	require.NoError(t, outer.Save(ctx, "b:c", []string{"outer"}))

	selected, _, _ := nested.Load(ctx, "c")
	assert.Equal(t, []string{"nested"}, selected)
	selected, _, _ = outer.Load(ctx, "b:c")
	assert.Equal(t, []string{"outer"}, selected)

	require.NoError(t, outer.Reset(ctx))
	selected, found, _ := nested.Load(ctx, "c")
	assert.True(t, found)
	assert.Equal(t, []string{"nested"}, selected)
}

func TestDecodeSelectionRejectsMalformedData(t *testing.T) {
	_, err := DecodeSelection(`{"not":"a list"}`)
	assert.Error(t, err)

	selected, err := DecodeSelection(`null`)
	require.NoError(t, err)
	assert.Equal(t, []string{}, selected)
}

func TestFactory(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(Settings{RedisURL: "redis://localhost:6379"})
	assert.Equal(t, []string{servicedef.CapabilityPersistenceRedis}, f.Capabilities())

	s1, err := f.Open(ctx, servicedef.StoreMemory, "p")
	require.NoError(t, err)
	s2, err := f.Open(ctx, "", "p")
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, "id", []string{"a"}))
	selected, found, err := s2.Load(ctx, "id")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, selected)

	_, err = f.Open(ctx, "cassandra", "p")
	assert.Error(t, err)

	_, err = NewRedisStoreFromURL("not a url", "p")
	assert.Error(t, err)
}
