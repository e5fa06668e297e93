package helpers

import (
	"time"

	o "github.com/uisync/selection-harness/framework/opt"
)

// NonBlockingSend sends a value if the channel has room, and returns false if it did not.
func NonBlockingSend[V any](ch chan<- V, value V) bool {
	select {
	case ch <- value:
		return true
	default:
		return false
	}
}

// TryReceive waits up to timeout for a value.
func TryReceive[V any](ch <-chan V, timeout time.Duration) o.Maybe[V] {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			return o.None[V]()
		}
		return o.Some(value)
	case <-deadline.C:
		return o.None[V]()
	}
}

// RequireValue receives a value, or fails and terminates the test if none arrives in time.
func RequireValue[V any](t TestContext, ch <-chan V, timeout time.Duration) V {
	t.Helper()
	var empty V
	return RequireValueWithMessage(t, ch, timeout, "timed out waiting for value of type %T", empty)
}

// RequireValueWithMessage is RequireValue with a custom failure message.
func RequireValueWithMessage[V any](
	t TestContext,
	ch <-chan V,
	timeout time.Duration,
	msgFormat string,
	msgArgs ...interface{},
) V {
	t.Helper()
	maybeValue := TryReceive(ch, timeout)
	if !maybeValue.IsDefined() {
		t.Errorf(msgFormat, msgArgs...)
		t.FailNow()
	}
	return maybeValue.Value()
}

// RequireNoMoreValues fails and terminates the test if a value arrives within the timeout.
func RequireNoMoreValues[V any](t TestContext, ch <-chan V, timeout time.Duration) {
	t.Helper()
	var empty V
	RequireNoMoreValuesWithMessage(t, ch, timeout, "received unexpected extra value of type %T", empty)
}

// RequireNoMoreValuesWithMessage is RequireNoMoreValues with a custom failure message.
func RequireNoMoreValuesWithMessage[V any](
	t TestContext,
	ch <-chan V,
	timeout time.Duration,
	msgFormat string,
	msgArgs ...interface{},
) {
	t.Helper()
	if TryReceive(ch, timeout).IsDefined() {
		t.Errorf(msgFormat, msgArgs...)
		t.FailNow()
	}
}

// RequireValues receives exactly count values, failing the test if any of them is late.
func RequireValues[V any](t TestContext, ch <-chan V, count int, timeout time.Duration) []V {
	t.Helper()
	ret := make([]V, 0, count)
	for i := 0; i < count; i++ {
		ret = append(ret, RequireValueWithMessage(t, ch, timeout,
			"timed out waiting for value %d of %d (type %T)", i+1, count, *new(V)))
	}
	return ret
}
