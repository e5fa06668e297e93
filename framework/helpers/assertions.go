package helpers

import (
	"time"
)

// PollForSpecificResultValue calls testFn at intervals until it returns expectedValue, and
// returns false if the timeout elapses first.
func PollForSpecificResultValue[V comparable](
	testFn func() V,
	timeout time.Duration,
	interval time.Duration,
	expectedValue V,
) bool {
	if testFn() == expectedValue {
		return true
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case <-deadline.C:
			return false
		case <-ticker.C:
			if testFn() == expectedValue {
				return true
			}
		}
	}
}

// AssertEventually is like assert.Eventually, but polls on the calling goroutine, which ldtest
// requires because FailNow works by panicking.
func AssertEventually(
	t TestContext,
	testFn func() bool,
	timeout time.Duration,
	interval time.Duration,
	failureMsgFormat string,
	failureMsgArgs ...interface{},
) bool {
	t.Helper()
	if PollForSpecificResultValue(testFn, timeout, interval, true) {
		return true
	}
	t.Errorf(failureMsgFormat, failureMsgArgs...)
	return false
}

// RequireEventually is AssertEventually followed by FailNow on failure.
func RequireEventually(
	t TestContext,
	testFn func() bool,
	timeout time.Duration,
	interval time.Duration,
	failureMsgFormat string,
	failureMsgArgs ...interface{},
) {
	t.Helper()
	if !AssertEventually(t, testFn, timeout, interval, failureMsgFormat, failureMsgArgs...) {
		t.FailNow()
	}
}
