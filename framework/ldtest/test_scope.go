package ldtest

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/uisync/selection-harness/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T is a test scope, used much like testing.T.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	nonCritical string
	failed      bool
	skipped     bool
	skipReason  string
	cleanups    []func()
	errors      []error
}

// TestConfiguration holds options for a whole test run.
type TestConfiguration struct {
	// Filter optionally restricts which tests run, by name.
	Filter Filter

	// TestLogger receives progress for each test. Nil means no output.
	TestLogger TestLogger

	// Context is an application-defined value that tests can retrieve with T.Context.
	Context interface{}

	// Capabilities are checked by T.RequireCapability.
	Capabilities framework.Capabilities
}

// Run executes a top-level test scope and returns the results of it and all its subtests.
func Run(config TestConfiguration, action func(*T)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) (result TestResult) {
	result.TestID = t.id
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil && !t.skipped {
			t.failed = true
			var addError error
			if _, ok := r.(*T); ok {
				if len(t.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				t.errors = append(t.errors, addError)
				t.env.config.TestLogger.TestError(t.id, addError)
			}
		}
		for i := len(t.cleanups) - 1; i >= 0; i-- {
			t.cleanups[i]()
		}
		result.Errors = t.errors
		result.Duration = time.Since(startTime)
		if t.skipped {
			t.env.results.Skipped = append(t.env.results.Skipped, t.id)
			return
		}
		if t.failed {
			if t.nonCritical == "" {
				t.env.results.Failures = append(t.env.results.Failures, result)
			} else {
				result.NonCritical = true
				result.Explanation = t.nonCritical
				t.env.results.NonCriticalFailures = append(t.env.results.NonCriticalFailures, result)
			}
		}
		t.env.results.Tests = append(t.env.results.Tests, result)
	}()

	action(t)
	return result
}

// ID returns the full name of this test.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a subtest in its own scope, like testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	if t.env.config.Filter != nil && !t.env.config.Filter.Match(id) {
		return
	}
	t.env.config.TestLogger.TestStarted(id)
	child := &T{id: id, env: t.env}
	t.debugLogger.AddChildLogger(&child.debugLogger)
	result := child.run(action)
	t.debugLogger.RemoveChildLogger(&child.debugLogger)
	if child.skipped {
		t.env.config.TestLogger.TestSkipped(id, child.skipReason)
	} else {
		t.env.config.TestLogger.TestFinished(id, result, child.debugLogger.Output())
	}
}

// NonCritical marks a failure of this test as known and tolerated. It is still reported, with
// the explanation, but does not make Results.OK false.
func (t *T) NonCritical(explanation string) {
	t.nonCritical = explanation
}

// Errorf records a failure without stopping the test. It is what testify assertions call.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := errors.New(trimAssertionTrace(fmt.Sprintf(format, args...)))
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow stops the test immediately and marks it failed.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Skip stops the test immediately and marks it skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug writes to the captured output of this scope.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns the logger whose output is captured for this scope and handed to
// TestLogger.TestFinished.
//
// A subtest's logger starts with a copy of what the parent has captured so far, and while the
// subtest runs, anything written to the parent's logger goes to the subtest instead. That lets
// an object owned by a parent scope, such as a component client or a mock callback endpoint,
// log into whichever subtest is currently using it.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Defer schedules a cleanup to run when this scope exits for any reason, in reverse order.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

func (t *T) Context() interface{} {
	return t.env.config.Context
}

func (t *T) Capabilities() framework.Capabilities {
	return append(framework.Capabilities(nil), t.env.config.Capabilities...)
}

// RequireCapability skips the test unless the component service reported the capability.
func (t *T) RequireCapability(name string) {
	if !t.Capabilities().Has(name) {
		t.SkipWithReason(fmt.Sprintf("component service does not have capability %q", name))
	}
}

// Helper exists so that T satisfies the same interfaces as testing.T. Failure messages do not
// include source locations, so there is nothing to hide.
func (t *T) Helper() {}

// testify's messages start with an "Error Trace:" block of source locations that mean nothing
// outside of "go test"; drop it and keep the rest.
func trimAssertionTrace(message string) string {
	if !strings.Contains(message, "Error Trace:") {
		return message
	}
	lines := strings.Split(message, "\n")
	kept := make([]string, 0, len(lines))
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Error Trace:"):
			inTrace = true
			continue
		case inTrace && isAssertionLabel(trimmed):
			inTrace = false
		case inTrace:
			continue
		}
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}

func isAssertionLabel(line string) bool {
	fields := strings.Fields(line)
	return len(fields) != 0 && strings.HasSuffix(fields[0], ":") && !strings.Contains(fields[0], ".go:")
}
