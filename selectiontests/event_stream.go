package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/require"
)

func doEventStreamTests(t *ldtest.T) {
	t.RequireCapability(servicedef.CapabilityEventStream)

	t.Run("events are numbered in order", func(t *ldtest.T) {
		c := NewComponent(t, servicedef.KindListSelect, WithItems("a", "b"))
		stream := SubscribeToEvents(t, c)

		require.NoError(t, c.APISelect(t, "a"))
		require.NoError(t, c.Select(t, c.KeyFor(t, "b")))
		require.NoError(t, c.APIDeselectAll(t))

		m.In(t).Assert(stream.RequireEvent(t, eventTimeout), m.AllOf(
			EventSequence().Should(m.Equal(1)),
			IsProgrammaticEvent(),
			IsChange([]string{"a"}, nil),
		))
		m.In(t).Assert(stream.RequireEvent(t, eventTimeout), m.AllOf(
			EventSequence().Should(m.Equal(2)),
			IsUserEvent(),
			IsChange([]string{"b"}, nil),
		))
		m.In(t).Assert(stream.RequireEvent(t, eventTimeout), m.AllOf(
			EventSequence().Should(m.Equal(3)),
			IsProgrammaticEvent(),
			IsChange(nil, []string{"a", "b"}),
		))
		stream.RequireNoMoreEvents(t, noMoreEventTimeout)
	})

	t.Run("every subscriber receives each event", func(t *ldtest.T) {
		c := NewComponent(t, servicedef.KindRadioButtonGroup, WithItems("a"))
		first := SubscribeToEvents(t, c)
		second := SubscribeToEvents(t, c)

		require.NoError(t, c.APISelect(t, "a"))
		for _, stream := range []EventSource{first, second} {
			m.In(t).Assert(stream.RequireEvent(t, eventTimeout), IsChange([]string{"a"}, nil))
		}
	})

	t.Run("events of other components are not included", func(t *ldtest.T) {
		c1 := NewComponent(t, servicedef.KindListSelect, WithItems("a"))
		c2 := NewComponent(t, servicedef.KindListSelect, WithItems("a"))
		stream := SubscribeToEvents(t, c1)

		require.NoError(t, c2.APISelect(t, "a"))
		stream.RequireNoMoreEvents(t, noMoreEventTimeout)
	})
}
