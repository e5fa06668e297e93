package selectiontests

import (
	"github.com/uisync/selection-harness/servicedef"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
)

// These matchers look at one property of a servicedef.SelectionEventRep each, so that a
// failure says exactly which part of an event was wrong.

func eventProperty(name string, getter func(servicedef.SelectionEventRep) interface{}) m.MatcherTransform {
	return m.Transform(
		name,
		func(value interface{}) (interface{}, error) {
			return getter(value.(servicedef.SelectionEventRep)), nil
		}).
		EnsureInputValueType(servicedef.SelectionEventRep{})
}

func EventOrigin() m.MatcherTransform {
	return eventProperty("origin", func(e servicedef.SelectionEventRep) interface{} { return e.Origin })
}

func EventAdded() m.MatcherTransform {
	return eventProperty("added items", func(e servicedef.SelectionEventRep) interface{} {
		return nonNil(e.Added)
	})
}

func EventRemoved() m.MatcherTransform {
	return eventProperty("removed items", func(e servicedef.SelectionEventRep) interface{} {
		return nonNil(e.Removed)
	})
}

func EventOldSelection() m.MatcherTransform {
	return eventProperty("old selection", func(e servicedef.SelectionEventRep) interface{} {
		return nonNil(e.OldSelection)
	})
}

func EventNewSelection() m.MatcherTransform {
	return eventProperty("new selection", func(e servicedef.SelectionEventRep) interface{} {
		return nonNil(e.NewSelection)
	})
}

func EventSequence() m.MatcherTransform {
	return eventProperty("sequence", func(e servicedef.SelectionEventRep) interface{} { return e.Sequence })
}

func IsUserEvent() m.Matcher {
	return EventOrigin().Should(m.Equal(servicedef.OriginUser))
}

func IsProgrammaticEvent() m.Matcher {
	return EventOrigin().Should(m.Equal(servicedef.OriginProgrammatic))
}

// IsChange matches an event's delta.
func IsChange(added, removed []string) m.Matcher {
	return m.AllOf(
		EventAdded().Should(m.Equal(nonNil(added))),
		EventRemoved().Should(m.Equal(nonNil(removed))),
	)
}

// HasSelections matches an event's full old and new selections.
func HasSelections(oldSelection, newSelection []string) m.Matcher {
	return m.AllOf(
		EventOldSelection().Should(m.Equal(nonNil(oldSelection))),
		EventNewSelection().Should(m.Equal(nonNil(newSelection))),
	)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
