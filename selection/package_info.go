// Package selection contains the server-side selection models for single-select and multi-select
// components, and the change events they deliver to listeners.
//
// Every mutating operation carries an Origin. The plain methods (Select, Deselect, DeselectAll)
// are for the owning application and always use OriginProgrammatic; remote requests go through
// the communicator package, which calls the *From variants with OriginUser. An operation that does
// not change the selection produces no event, whatever its origin.
//
// Listeners are called synchronously, in registration order, on the goroutine that made the
// change. Models are not safe for concurrent use.
package selection
