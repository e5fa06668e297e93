package component

import (
	"context"
	"testing"

	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/selection"

	"github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRadioButtonGroup(t *testing.T) *RadioButtonGroup[string] {
	r := NewRadioButtonGroup[string](Options[string]{})
	// deliberately not in the order the tests select them
	require.NoError(t, r.SetItems(context.Background(), "Third", "Second", "First"))
	return r
}

func keyOf[T comparable](t *testing.T, keys *keymapper.KeyMapper[T], item T) string {
	key, err := keys.Key(item)
	require.NoError(t, err)
	return key
}

func TestRadioButtonGroupAPISelectionIsNotUserOriginated(t *testing.T) {
	r := newRadioButtonGroup(t)
	count := 0
	r.AddSelectionListener(func(e selection.Event[string]) error {
		count++
		assert.False(t, e.IsUserOriginated())
		return nil
	})

	require.NoError(t, r.Select("First"))
	require.NoError(t, r.Select("Second"))
	require.NoError(t, r.Deselect("Second"))
	require.NoError(t, r.SelectionModel().DeselectAll())

	assert.Equal(t, 3, count)
	assert.False(t, r.SelectedItem().IsDefined())
}

func TestRadioButtonGroupRPCSelectionIsUserOriginated(t *testing.T) {
	r := newRadioButtonGroup(t)
	count := 0
	r.AddSelectionListener(func(e selection.Event[string]) error {
		count++
		assert.True(t, e.IsUserOriginated())
		return nil
	})

	rpc := r.RPC()
	require.NoError(t, rpc.Select(keyOf(t, r.KeyMapper(), "First")))
	require.NoError(t, rpc.Select(keyOf(t, r.KeyMapper(), "Second")))
	require.NoError(t, rpc.Deselect(keyOf(t, r.KeyMapper(), "Second")))

	assert.Equal(t, 3, count)
}

func TestRadioButtonGroupRejectsUnknownKey(t *testing.T) {
	r := newRadioButtonGroup(t)
	require.NoError(t, r.Select("Third"))

	err := r.RPC().Select("no-such-key")
	assert.ErrorIs(t, err, keymapper.ErrUnknownKey)
	assert.Equal(t, "Third", r.SelectedItem().Value())
}

func TestRadioButtonGroupRowsFollowProviderOrder(t *testing.T) {
	r := newRadioButtonGroup(t)
	require.NoError(t, r.Select("Second"))

	rows := r.DataCommunicator().Rows()
	matchers.In(t).Assert(rows, matchers.Items(
		matchers.Equal(Row[string]{Key: keyOf(t, r.KeyMapper(), "Third"), Item: "Third"}),
		matchers.Equal(Row[string]{Key: keyOf(t, r.KeyMapper(), "Second"), Item: "Second", Selected: true}),
		matchers.Equal(Row[string]{Key: keyOf(t, r.KeyMapper(), "First"), Item: "First"}),
	))
}

func TestListSelectDefaults(t *testing.T) {
	l := NewListSelect[string](Options[string]{Caption: "Hello"})
	assert.Equal(t, "Hello", l.Caption())
	assert.Equal(t, DefaultRows, l.Rows())
	assert.Len(t, l.DataCommunicator().Rows(), 0)
}

func TestListSelectRowsAndOptions(t *testing.T) {
	l := NewListSelect[string](Options[string]{})
	require.NoError(t, l.SetItems(context.Background(), "Male", "Female"))
	require.NoError(t, l.SetRows(9))
	assert.Equal(t, 9, l.Rows())
	assert.Equal(t, []string{"Male", "Female"}, l.DataCommunicator().Items())

	err := l.SetRows(0)
	assert.ErrorIs(t, err, ErrInvalidRows)
	assert.Equal(t, 9, l.Rows())
}

func TestListSelectKeepsSelectionOrder(t *testing.T) {
	l := NewListSelect[string](Options[string]{})
	require.NoError(t, l.SetItems(context.Background(), "Third", "Second", "First"))

	require.NoError(t, l.Select("First"))
	require.NoError(t, l.RPC().Select(keyOf(t, l.KeyMapper(), "Third")))
	require.NoError(t, l.Select("Second"))
	assert.Equal(t, []string{"First", "Third", "Second"}, l.SelectedItems())

	require.NoError(t, l.UpdateSelection([]string{}, []string{"Third"}))
	assert.Equal(t, []string{"First", "Second"}, l.SelectedItems())
}

func TestListSelectRemoteBatchIsOneEvent(t *testing.T) {
	l := NewListSelect[string](Options[string]{})
	require.NoError(t, l.SetItems(context.Background(), "a", "b", "c"))
	var events []selection.Event[string]
	l.AddSelectionListener(func(e selection.Event[string]) error {
		events = append(events, e)
		return nil
	})

	keys := []string{keyOf(t, l.KeyMapper(), "a"), keyOf(t, l.KeyMapper(), "c")}
	require.NoError(t, l.RPC().OnRemoteUpdateSelection(keys, nil))

	require.Len(t, events, 1)
	assert.Equal(t, []string{"a", "c"}, events[0].AddedItems())
	assert.True(t, events[0].IsUserOriginated())
}
