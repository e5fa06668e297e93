package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doSingleSelectionTests(t *ldtest.T) {
	t.RequireCapability(servicedef.CapabilitySingleSelect)

	items := WithItems("First", "Second", "Third")

	t.Run("select replaces previous selection with one event", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items)

		require.NoError(t, c.APISelect(t, "First"))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsProgrammaticEvent(),
			IsChange([]string{"First"}, nil),
		))

		require.NoError(t, c.APISelect(t, "Second"))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsProgrammaticEvent(),
			IsChange([]string{"Second"}, []string{"First"}),
			HasSelections([]string{"First"}, []string{"Second"}),
		))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Equal(t, []string{"Second"}, c.SelectedItems(t))
	})

	t.Run("selecting the selected item is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items)

		require.NoError(t, c.APISelect(t, "First"))
		events.RequireEvent(t, eventTimeout)
		require.NoError(t, c.APISelect(t, "First"))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})

	t.Run("deselecting an unselected item is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items, WithInitialSelection("First"))

		require.NoError(t, c.APIDeselect(t, "Second"))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
		assert.Equal(t, []string{"First"}, c.SelectedItems(t))
	})

	t.Run("deselect clears the selection", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items, WithInitialSelection("Second"))

		require.NoError(t, c.APIDeselect(t, "Second"))
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsChange(nil, []string{"Second"}),
			HasSelections([]string{"Second"}, nil),
		))
		assert.Len(t, c.SelectedItems(t), 0)
	})

	t.Run("deselectAll on empty selection is a no-op", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items)

		require.NoError(t, c.APIDeselectAll(t))
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})

	t.Run("select, select, deselect, deselectAll fires three events", func(t *ldtest.T) {
		c, events := NewObservedComponent(t, servicedef.KindRadioButtonGroup, items)

		require.NoError(t, c.APISelect(t, "First"))
		require.NoError(t, c.APISelect(t, "Second"))
		require.NoError(t, c.APIDeselect(t, "Second"))
		require.NoError(t, c.APIDeselectAll(t))

		received := drainEvents(t, events)
		assert.Len(t, received, 3)
		for _, e := range received {
			m.In(t).Assert(e, IsProgrammaticEvent())
		}
	})
}
