package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doMultiSelectionTests(t *ldtest.T) {
	t.RequireCapability(servicedef.CapabilityMultiSelect)

	items := WithItems("a", "b", "c", "d")

	t.Run("selection keeps insertion order", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, items)

		for _, item := range []string{"c", "a", "d"} {
			require.NoError(t, c.APISelect(t, item))
			m.In(t).Assert(events.RequireEvent(t, eventTimeout), IsChange([]string{item}, nil))
		}
		assert.Equal(t, []string{"c", "a", "d"}, c.SelectedItems(t))

		require.NoError(t, c.APIDeselect(t, "a"))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsChange(nil, []string{"a"}),
			HasSelections([]string{"c", "a", "d"}, []string{"c", "d"}),
		))
		assert.Equal(t, []string{"c", "d"}, c.SelectedItems(t))
	})

	t.Run("selecting a selected item is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, items, WithInitialSelection("b"))

		require.NoError(t, c.APISelect(t, "b"))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Equal(t, []string{"b"}, c.SelectedItems(t))
	})

	t.Run("deselectAll fires one event with every removed item", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, items, WithInitialSelection("d", "b"))

		require.NoError(t, c.APIDeselectAll(t))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsProgrammaticEvent(),
			IsChange(nil, []string{"d", "b"}),
			HasSelections([]string{"d", "b"}, nil),
		))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Len(t, c.SelectedItems(t), 0)
	})

	t.Run("deselectAll on empty selection is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindListSelect, items)

		require.NoError(t, c.APIDeselectAll(t))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})
}
