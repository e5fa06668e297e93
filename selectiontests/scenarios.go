package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/scenarios"

	"github.com/stretchr/testify/require"
)

func doScenarioTests(t *ldtest.T) {
	sources, err := scenarios.LoadAll()
	require.NoError(t, err)

	for _, source := range sources {
		s := source
		t.Run(s.ID(), func(t *ldtest.T) {
			c, events := NewObservedComponent(t, s.Component, WithItems(s.Items...))
			require.NoError(t, s.Replay(remoteTarget{t: t, c: c}))

			received := drainEvents(t, events)
			origins := make([]string, 0, len(received))
			for _, e := range received {
				origins = append(origins, e.Origin)
			}
			require.NoError(t, s.Verify(origins, c.SelectedItems(t)))
		})
	}
}
