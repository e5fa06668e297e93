package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRemoteSelectionTests(t *ldtest.T) {
	for _, kind := range []servicedef.ComponentKind{servicedef.KindRadioButtonGroup, servicedef.KindListSelect} {
		t.Run(string(kind), func(t *ldtest.T) {
			doRemoteSelectionTestsForKind(t, kind)
		})
	}

	t.Run("batch update is one user event", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, WithItems("a", "b", "c"),
			WithInitialSelection("a"))
		keyA, keyB, keyC := c.KeyFor(t, "a"), c.KeyFor(t, "b"), c.KeyFor(t, "c")

		require.NoError(t, c.UpdateSelection(t, []string{keyC, keyB}, []string{keyA}))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsUserEvent(),
			IsChange([]string{"c", "b"}, []string{"a"}),
			HasSelections([]string{"a"}, []string{"c", "b"}),
		))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})

	t.Run("batch with an unknown key changes nothing", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, WithItems("a", "b"))

		err := c.UpdateSelection(t, []string{c.KeyFor(t, "a"), "nonexistent-key"}, nil)
		assert.ErrorIs(t, err, keymapper.ErrUnknownKey)
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Len(t, c.SelectedItems(t), 0)
	})

	t.Run("batch update is rejected by single selection", func(t *ldtest.T) {
		c := NewComponent(t, servicedef.KindRadioButtonGroup, WithItems("a"))
		assert.Error(t, c.UpdateSelection(t, []string{c.KeyFor(t, "a")}, nil))
	})
}

func doRemoteSelectionTestsForKind(t *ldtest.T, kind servicedef.ComponentKind) {
	items := WithItems("First", "Second", "Third")

	t.Run("every item has a distinct key", func(t *ldtest.T) {
		state := NewComponent(t, kind, items).State(t)
		keys := make(map[string]string)
		for _, row := range state.Items {
			if other, ok := keys[row.Key]; ok {
				t.Errorf("items %q and %q have the same key %q", other, row.Item, row.Key)
			}
			keys[row.Key] = row.Item
		}
	})

	t.Run("keys are stable", func(t *ldtest.T) {
		c := NewComponent(t, kind, items)
		first := c.KeyFor(t, "Second")
		require.NoError(t, c.APISelect(t, "Second"))
		assert.Equal(t, first, c.KeyFor(t, "Second"))
	})

	t.Run("remote select and deselect are user-originated", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, kind, items)

		require.NoError(t, c.Select(t, c.KeyFor(t, "First")))
		require.NoError(t, c.Select(t, c.KeyFor(t, "Second")))
		require.NoError(t, c.Deselect(t, c.KeyFor(t, "Second")))

		received := drainEvents(t, events)
		assert.Len(t, received, 3)
		for _, e := range received {
			m.In(t).Assert(e, IsUserEvent())
		}
	})

	t.Run("api changes are programmatic", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, kind, items)

		require.NoError(t, c.APISelect(t, "Third"))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), IsProgrammaticEvent())
	})

	t.Run("unknown key is rejected and changes nothing", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, kind, items, WithInitialSelection("First"))

		assert.ErrorIs(t, c.Select(t, "nonexistent-key"), keymapper.ErrUnknownKey)
		assert.ErrorIs(t, c.Deselect(t, "nonexistent-key"), keymapper.ErrUnknownKey)
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Equal(t, []string{"First"}, c.SelectedItems(t))
	})

	t.Run("key of a removed item is unknown", func(t *ldtest.T) {
		t.RequireCapability(servicedef.CapabilityDataProvider)
		c := NewComponent(t, kind, items)
		oldKey := c.KeyFor(t, "Third")
		c.SetItems(t, "First", "Second")

		assert.ErrorIs(t, c.Select(t, oldKey), keymapper.ErrUnknownKey)
	})

	t.Run("remote select of a selected item is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, kind, items, WithInitialSelection("First"))

		require.NoError(t, c.Select(t, c.KeyFor(t, "First")))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})
}
