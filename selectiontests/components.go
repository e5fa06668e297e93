package selectiontests

import (
	"github.com/uisync/selection-harness/framework/ldtest"
	o "github.com/uisync/selection-harness/framework/opt"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultListSelectRows = 10

func doComponentStateTests(t *ldtest.T) {
	t.Run("list select", func(t *ldtest.T) {
		t.Run("caption and default rows", func(t *ldtest.T) {
			state := NewComponent(t, servicedef.KindListSelect, WithCaption("Pick some"), WithItems("a")).State(t)
			assert.Equal(t, servicedef.KindListSelect, state.Kind)
			assert.Equal(t, "Pick some", state.Caption)
			assert.Equal(t, o.Some(defaultListSelectRows), state.Rows)
		})

		t.Run("rows can be configured", func(t *ldtest.T) {
			c := NewComponent(t, servicedef.KindListSelect, WithRows(5))
			assert.Equal(t, o.Some(5), c.State(t).Rows)

			c.Command(t, servicedef.CommandParams{Command: servicedef.CommandSetRows, Rows: o.Some(3)})
			assert.Equal(t, o.Some(3), c.State(t).Rows)
		})

		t.Run("rows must be positive", func(t *ldtest.T) {
			c := NewComponent(t, servicedef.KindListSelect)
			err := c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandSetRows, Rows: o.Some(0)})
			assert.Error(t, err)
			assert.Equal(t, o.Some(defaultListSelectRows), c.State(t).Rows)
		})

		t.Run("items are listed with their selection", func(t *ldtest.T) {
			state := NewComponent(t, servicedef.KindListSelect, WithItems("a", "b", "c"),
				WithInitialSelection("c")).State(t)
			require.Len(t, state.Items, 3)
			for i, item := range []string{"a", "b", "c"} {
				assert.Equal(t, item, state.Items[i].Item)
				assert.Equal(t, item == "c", state.Items[i].Selected)
			}
		})
	})

	t.Run("radio button group", func(t *ldtest.T) {
		t.Run("has no rows setting", func(t *ldtest.T) {
			c := NewComponent(t, servicedef.KindRadioButtonGroup)
			assert.False(t, c.State(t).Rows.IsDefined())
			err := c.TryCommand(t, servicedef.CommandParams{Command: servicedef.CommandSetRows, Rows: o.Some(3)})
			assert.Error(t, err)
		})

		t.Run("caption", func(t *ldtest.T) {
			state := NewComponent(t, servicedef.KindRadioButtonGroup, WithCaption("Pick one")).State(t)
			assert.Equal(t, "Pick one", state.Caption)
		})
	})
}
