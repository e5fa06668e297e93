package selectiontests

import (
	"fmt"

	"github.com/uisync/selection-harness/framework/ldtest"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyItemCount = 300

func dummyItems() []string {
	items := make([]string, dummyItemCount)
	for i := range items {
		items[i] = fmt.Sprintf("Foo %d", i)
	}
	return items
}

func doDataProviderTests(t *ldtest.T) {
	t.RequireCapability(servicedef.CapabilityDataProvider)

	for _, kind := range []servicedef.ComponentKind{servicedef.KindRadioButtonGroup, servicedef.KindListSelect} {
		t.Run(string(kind), func(t *ldtest.T) {
			doDataProviderTestsForKind(t, kind)
		})
	}
}

func doDataProviderTestsForKind(t *ldtest.T, kind servicedef.ComponentKind) {
	newDummyComponent := func(t *ldtest.T) (*ComponentClient, EventSource) {
		return NewObservedComponent(t, kind, WithItems(dummyItems()...), WithInitialSelection("Foo 200"),
			WithDataRequestLogging())
	}

	t.Run("initial data is fetched once", func(t *ldtest.T) {
		c, _ := newDummyComponent(t)
		state := c.State(t)
		assert.Equal(t, o.Some(1), state.DataRequests)
		assert.Len(t, state.Items, dummyItemCount)
		assert.Equal(t, []string{"Foo 200"}, state.Selected)
	})

	t.Run("selection changes do not fetch", func(t *ldtest.T) {
		c, events := newDummyComponent(t)

		require.NoError(t, c.Select(t, c.KeyFor(t, "Foo 20")))
		events.RequireEvent(t, eventTimeout)
		require.NoError(t, c.APISelect(t, "Foo 21"))
		events.RequireEvent(t, eventTimeout)

		assert.Equal(t, o.Some(1), c.State(t).DataRequests)
	})

	t.Run("new data provider is fetched once and keeps selection", func(t *ldtest.T) {
		c, events := newDummyComponent(t)

		c.SetItems(t, dummyItems()...)
		state := c.State(t)
		assert.Equal(t, o.Some(1), state.DataRequests)
		assert.Equal(t, []string{"Foo 200"}, state.Selected)
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})

	t.Run("empty data deselects, and restoring does not reselect", func(t *ldtest.T) {
		c, events := newDummyComponent(t)
		oldKey := c.KeyFor(t, "Foo 200")

		c.SetItems(t)
		m.In(t).Assert(events.RequireEvent(t, eventTimeout), m.AllOf(
			IsProgrammaticEvent(),
			IsChange(nil, []string{"Foo 200"}),
		))
		state := c.State(t)
		assert.Len(t, state.Items, 0)
		assert.Len(t, state.Selected, 0)
		assert.ErrorIs(t, c.Select(t, oldKey), keymapper.ErrUnknownKey)

		c.SetItems(t, dummyItems()...)
		state = c.State(t)
		assert.Len(t, state.Items, dummyItemCount)
		assert.Len(t, state.Selected, 0)
		assert.Equal(t, o.Some(1), state.DataRequests)
		events.RequireNoMoreEvents(t, noMoreEventTimeout)
	})
}
