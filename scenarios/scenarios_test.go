package scenarios

import (
	"context"
	"testing"

	"github.com/uisync/selection-harness/communicator"
	"github.com/uisync/selection-harness/component"
	"github.com/uisync/selection-harness/keymapper"
	"github.com/uisync/selection-harness/selection"
	"github.com/uisync/selection-harness/servicedef"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type localComponent interface {
	Select(item string) error
	Deselect(item string) error
	DeselectAll() error
	SelectedItems() []string
	AddSelectionListener(selection.Listener[string]) selection.Registration
	KeyMapper() *keymapper.KeyMapper[string]
	RPC() *communicator.Communicator[string]
	SetItems(ctx context.Context, items ...string) error
}

type localTarget struct {
	localComponent
}

func (l localTarget) RemoteSelect(key string) error   { return l.RPC().OnRemoteSelect(key) }
func (l localTarget) RemoteDeselect(key string) error { return l.RPC().OnRemoteDeselect(key) }
func (l localTarget) RemoteUpdateSelection(added, removed []string) error {
	return l.RPC().OnRemoteUpdateSelection(added, removed)
}
func (l localTarget) KeyFor(item string) (string, error) { return l.KeyMapper().Key(item) }

func newLocalComponent(kind servicedef.ComponentKind) localComponent {
	if kind == servicedef.KindRadioButtonGroup {
		return component.NewRadioButtonGroup(component.Options[string]{})
	}
	return component.NewListSelect(component.Options[string]{})
}

func TestEmbeddedScenariosAgainstLocalComponents(t *testing.T) {
	sources, err := LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	for _, s := range sources {
		t.Run(s.ID(), func(t *testing.T) {
			c := newLocalComponent(s.Component)
			require.NoError(t, c.SetItems(context.Background(), s.Items...))
			var origins []string
			c.AddSelectionListener(func(e selection.Event[string]) error {
				origins = append(origins, e.Origin().String())
				return nil
			})

			require.NoError(t, s.Replay(localTarget{c}))
			assert.NoError(t, s.Verify(origins, c.SelectedItems()))
		})
	}
}

func TestParameterizedFileProducesOneScenarioPerParameterSet(t *testing.T) {
	sources, err := Parse("test.yaml", []byte(`
parameters:
  - { component: radioButtonGroup, count: 1 }
  - { component: listSelect, count: 2 }
name: kinds
component: <component>
items: [a]
expect:
  events: <count>
  selected: []
`))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, servicedef.KindRadioButtonGroup, sources[0].Component)
	assert.Equal(t, 1, sources[0].Expect.Events)
	assert.Equal(t, "kinds (component=radioButtonGroup,count=1)", sources[0].ID())
	assert.Equal(t, servicedef.KindListSelect, sources[1].Component)
	assert.Equal(t, 2, sources[1].Expect.Events)
}

func TestConstantsAndParameterCombinations(t *testing.T) {
	sources, err := Parse("test.json", []byte(`{
		"constants": { "prefix": "item" },
		"parameters": [
			[ { "x": "1" }, { "x": "2" } ],
			[ { "y": "a" }, { "y": "b" }, { "y": "c" } ]
		],
		"component": "listSelect",
		"items": [ "<prefix>-<x>-<y>" ]
	}`))
	require.NoError(t, err)
	require.Len(t, sources, 6)

	var items []string
	for _, s := range sources {
		items = append(items, s.Items...)
	}
	assert.ElementsMatch(t, []string{
		"item-1-a", "item-1-b", "item-1-c", "item-2-a", "item-2-b", "item-2-c",
	}, items)
	assert.Equal(t, "test", sources[0].Name)
}

func TestSubstituteKeepsValueTypes(t *testing.T) {
	out := substitute([]byte(`{"n": "<n>", "s": "<s>", "text": "v<n>"}`), Substitutions{
		"n": ldvalue.Int(3),
		"s": ldvalue.String("x"),
	})
	assert.JSONEq(t, `{"n": 3, "s": "x", "text": "v3"}`, string(out))
}

func TestInvalidScenarios(t *testing.T) {
	for name, data := range map[string]string{
		"unknown kind":         `{"component": "grid"}`,
		"unknown op":           `{"component": "listSelect", "steps": [{"op": "click"}]}`,
		"unknown error":        `{"component": "listSelect", "steps": [{"op": "select", "error": "oops"}]}`,
		"batch on radio group": `{"component": "radioButtonGroup", "steps": [{"op": "remoteUpdateSelection"}]}`,
		"origin count":         `{"component": "listSelect", "expect": {"events": 2, "origins": ["user"]}}`,
		"bad parameters":       `{"component": "listSelect", "parameters": [1, 2]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("bad.json", []byte(data))
			assert.Error(t, err)
		})
	}
}

func TestYAMLWithNonStringKeyIsRejected(t *testing.T) {
	var target map[string]interface{}
	err := ParseJSONOrYAML([]byte("1: a\n"), &target)
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	s := Scenario{Expect: Expectation{Events: 2, Origins: []string{"user", "programmatic"}, Selected: []string{"a"}}}
	assert.NoError(t, s.Verify([]string{"user", "programmatic"}, []string{"a"}))
	assert.Error(t, s.Verify([]string{"user"}, []string{"a"}))
	assert.Error(t, s.Verify([]string{"programmatic", "user"}, []string{"a"}))
	assert.Error(t, s.Verify([]string{"user", "programmatic"}, nil))

	empty := Scenario{}
	assert.NoError(t, empty.Verify(nil, []string{}))
}

func TestReplayReportsUnexpectedOutcome(t *testing.T) {
	c := newLocalComponent(servicedef.KindListSelect)
	require.NoError(t, c.SetItems(context.Background(), "a"))

	missingError := Scenario{Steps: []Step{{Op: OpSelect, Item: "a", Error: ErrorUnknownKey}}}
	assert.Error(t, missingError.Replay(localTarget{c}))

	unexpectedError := Scenario{Steps: []Step{{Op: OpRemoteSelect, Key: "nope"}}}
	assert.ErrorIs(t, unexpectedError.Replay(localTarget{c}), keymapper.ErrUnknownKey)
}

func TestReplayRejectsUnknownErrorName(t *testing.T) {
	c := newLocalComponent(servicedef.KindListSelect)
	require.NoError(t, c.SetItems(context.Background(), "a"))

	s := Scenario{Steps: []Step{{Op: OpSelect, Item: "a", Error: "noSuchError"}}}
	err := s.Replay(localTarget{c})
	assert.ErrorContains(t, err, `unknown error name "noSuchError"`)
	assert.Len(t, c.SelectedItems(), 0)
}
