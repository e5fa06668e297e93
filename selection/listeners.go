package selection

import (
	"golang.org/x/exp/slices"
)

// Listener receives selection events. A non-nil error stops delivery to the remaining listeners
// and is returned from the operation that caused the event; the selection change itself stays in
// effect.
type Listener[T comparable] func(Event[T]) error

// Registration is returned by AddSelectionListener and can be used to remove that listener.
type Registration interface {
	// Remove unregisters the listener. Calling it more than once has no effect.
	Remove()
}

type listenerEntry[T comparable] struct {
	id       int
	listener Listener[T]
}

// listenerList keeps listeners in registration order. Entries are identified by a handle rather
// than by the function value, so the same function can be registered twice and removed once.
type listenerList[T comparable] struct {
	entries []listenerEntry[T]
	lastID  int
}

type listenerRegistration[T comparable] struct {
	owner *listenerList[T]
	id    int
}

func (r listenerRegistration[T]) Remove() {
	r.owner.remove(r.id)
}

func (l *listenerList[T]) add(listener Listener[T]) Registration {
	l.lastID++
	l.entries = append(l.entries, listenerEntry[T]{id: l.lastID, listener: listener})
	return listenerRegistration[T]{owner: l, id: l.lastID}
}

func (l *listenerList[T]) remove(id int) {
	if i := slices.IndexFunc(l.entries, func(e listenerEntry[T]) bool { return e.id == id }); i >= 0 {
		l.entries = slices.Delete(l.entries, i, i+1)
	}
}

func (l *listenerList[T]) fire(event Event[T]) error {
	// Iterate over a snapshot so that a listener can add or remove listeners while being called.
	snapshot := slices.Clone(l.entries)
	for _, e := range snapshot {
		if err := e.listener(event); err != nil {
			return err
		}
	}
	return nil
}
