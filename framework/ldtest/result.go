package ldtest

import (
	"fmt"
	"strings"
	"time"
)

// Results is everything that happened in one call to Run.
type Results struct {
	Tests               []TestResult
	Failures            []TestResult
	NonCriticalFailures []TestResult
	Skipped             []TestID
}

// TestResult is the outcome of a single test scope.
type TestResult struct {
	TestID      TestID
	Errors      []error
	Duration    time.Duration
	NonCritical bool
	Explanation string
}

// OK is true if there were no failures other than non-critical ones.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Summary is a one-line count of outcomes.
func (r Results) Summary() string {
	s := fmt.Sprintf("%d tests, %d failed, %d skipped", len(r.Tests), len(r.Failures), len(r.Skipped))
	if len(r.NonCriticalFailures) != 0 {
		s += fmt.Sprintf(", %d non-critical failures", len(r.NonCriticalFailures))
	}
	return s
}

// Failed is true if the test reported any errors.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

// TestID is the path of names from the top-level scope to a subtest.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID for a subtest; the receiver is not modified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// TestFailure associates an error with the test that produced it.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

func (f TestFailure) Unwrap() error {
	return f.Err
}
