package selectiontests

import (
	"github.com/uisync/selection-harness/framework/harness"
	"github.com/uisync/selection-harness/framework/helpers"
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doListenerCallbackTests(t *ldtest.T) {
	t.RequireCapability(servicedef.CapabilityListenerCallbacks)

	t.Run("listener failure is returned to the caller", func(t *ldtest.T) {
		callbacks := NewListenerCallbacks(t)
		c := NewComponent(t, servicedef.KindListSelect, WithItems("a", "b"), callbacks)

		callbacks.FailWith("listener said no")
		err := c.APISelect(t, "a")
		var se harness.ServiceError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Body, "listener said no")
		callbacks.RequireEvent(t, eventTimeout)
	})

	t.Run("listener failure does not roll back the change", func(t *ldtest.T) {
		callbacks := NewListenerCallbacks(t)
		c := NewComponent(t, servicedef.KindRadioButtonGroup, WithItems("a", "b"), callbacks)

		callbacks.FailWith("listener said no")
		assert.Error(t, c.Select(t, c.KeyFor(t, "b")))
		callbacks.RequireEvent(t, eventTimeout)
		assert.Equal(t, []string{"b"}, c.SelectedItems(t))

		callbacks.FailWith("")
		require.NoError(t, c.APIDeselect(t, "b"))
		m.In(t).Assert(callbacks.RequireEvent(t, eventTimeout), IsChange(nil, []string{"b"}))
	})

	t.Run("listener failure stops the event stream update", func(t *ldtest.T) {
		t.RequireCapability(servicedef.CapabilityEventStream)
		callbacks := NewListenerCallbacks(t)
		c := NewComponent(t, servicedef.KindListSelect, WithItems("a", "b"), callbacks)
		stream := SubscribeToEvents(t, c)

		callbacks.FailWith("listener said no")
		assert.Error(t, c.APISelect(t, "a"))
		stream.RequireNoMoreEvents(t, noMoreEventTimeout)

		callbacks.FailWith("")
		require.NoError(t, c.APISelect(t, "b"))
		m.In(t).Assert(stream.RequireEvent(t, eventTimeout), IsChange([]string{"b"}, nil))
	})

	t.Run("callbacks arrive in sequence order", func(t *ldtest.T) {
		callbacks := NewListenerCallbacks(t)
		c := NewComponent(t, servicedef.KindListSelect, WithItems("a", "b", "c"), callbacks)

		for _, item := range []string{"a", "b", "c"} {
			require.NoError(t, c.APISelect(t, item))
		}
		events := helpers.RequireValues(t, callbacks.service.Events, 3, eventTimeout)
		for i, e := range events {
			m.In(t).Assert(e, EventSequence().Should(m.Equal(i+1)))
		}
	})

	t.Run("component reports when it is closed", func(t *ldtest.T) {
		callbacks := NewListenerCallbacks(t)
		c := NewComponent(t, servicedef.KindRadioButtonGroup, callbacks)

		require.NoError(t, c.entity.Close())
		callbacks.RequireClosed(t, eventTimeout)
	})
}
