package selectiontests

import (
	"fmt"
	"time"

	"github.com/uisync/selection-harness/framework/helpers"
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doPersistenceTests(t *ldtest.T) {
	for _, kind := range []servicedef.StoreKind{
		servicedef.StoreMemory,
		servicedef.StoreRedis,
		servicedef.StoreConsul,
		servicedef.StoreDynamoDB,
	} {
		t.Run(string(kind), func(t *ldtest.T) {
			if capability := kind.Capability(); capability != "" {
				t.RequireCapability(capability)
			}
			newPersistenceTests(t, kind).run(t)
		})
	}
}

type persistenceTests struct {
	kind      servicedef.StoreKind
	inspector PersistenceInspector
}

func newPersistenceTests(t *ldtest.T, kind servicedef.StoreKind) persistenceTests {
	return persistenceTests{kind: kind, inspector: requireContext(t).inspectors[kind]}
}

// params returns persistence parameters with a prefix that no other test uses, and resets that
// prefix in the store when the test exits.
func (p persistenceTests) params(t *ldtest.T) servicedef.PersistenceParams {
	params := servicedef.PersistenceParams{
		Store:  p.kind,
		Prefix: fmt.Sprintf("selection-tests-%s", uuid.NewString()),
		ID:     "component",
	}
	if p.inspector != nil {
		t.Defer(func() { _ = p.inspector.Reset(params.Prefix) })
	}
	return params
}

func (p persistenceTests) requireInspector(t *ldtest.T) PersistenceInspector {
	if p.inspector == nil {
		t.SkipWithReason(fmt.Sprintf("harness was not configured to inspect %s data", p.kind))
	}
	return p.inspector
}

func (p persistenceTests) run(t *ldtest.T) {
	items := WithItems("a", "b", "c", "d")

	t.Run("selection is restored by a new component", func(t *ldtest.T) {
		params := p.params(t)
		first := NewComponent(t, servicedef.KindListSelect, items, WithPersistence(params))
		require.NoError(t, first.APISelect(t, "c"))
		require.NoError(t, first.Select(t, first.KeyFor(t, "a")))

		second := NewComponent(t, servicedef.KindListSelect, items, WithPersistence(params))
		assert.Equal(t, []string{"c", "a"}, second.SelectedItems(t))
	})

	t.Run("cleared selection is restored as empty", func(t *ldtest.T) {
		params := p.params(t)
		first := NewComponent(t, servicedef.KindRadioButtonGroup, items, WithPersistence(params))
		require.NoError(t, first.APISelect(t, "b"))
		require.NoError(t, first.APIDeselectAll(t))

		second := NewComponent(t, servicedef.KindRadioButtonGroup, items, WithPersistence(params),
			WithInitialSelection("d"))
		assert.Len(t, second.SelectedItems(t), 0)
	})

	t.Run("nothing saved keeps initial selection", func(t *ldtest.T) {
		c := NewComponent(t, servicedef.KindListSelect, items, WithPersistence(p.params(t)),
			WithInitialSelection("b"))
		assert.Equal(t, []string{"b"}, c.SelectedItems(t))
	})

	t.Run("stored value is the selected items in order", func(t *ldtest.T) {
		inspector := p.requireInspector(t)
		params := p.params(t)
		c := NewComponent(t, servicedef.KindListSelect, items, WithPersistence(params))
		require.NoError(t, c.APISelect(t, "d"))
		require.NoError(t, c.APISelect(t, "b"))

		var saved []string
		helpers.RequireEventually(t, func() bool {
			items, found, err := inspector.Read(params.Prefix, params.ID)
			require.NoError(t, err)
			saved = items
			return found && len(items) == 2
		}, eventTimeout, time.Millisecond*50, "timed out waiting for %s to contain the selection", p.kind)
		assert.Equal(t, []string{"d", "b"}, saved)
	})

	t.Run("selection written to the store is restored", func(t *ldtest.T) {
		inspector := p.requireInspector(t)
		params := p.params(t)
		require.NoError(t, inspector.Write(params.Prefix, params.ID, []string{"b", "a"}))

		c := NewComponent(t, servicedef.KindListSelect, items, WithPersistence(params))
		assert.Equal(t, []string{"b", "a"}, c.SelectedItems(t))
	})
}
