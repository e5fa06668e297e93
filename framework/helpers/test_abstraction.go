package helpers

import (
	"errors"
	"fmt"
	"strings"
)

// TestContext is a minimal interface for types like *testing.T and *ldtest.T representing a
// test that can fail.
type TestContext interface {
	Errorf(msgFormat string, msgArgs ...interface{})
	FailNow()
	Helper()
}

// TestRecorder is a TestContext that only records what happened. It is for testing helpers
// that take a TestContext.
type TestRecorder struct {
	Errors     []string
	Terminated bool

	// PanicOnTerminate makes FailNow panic with the recorder itself, which is how ldtest stops a
	// test. Otherwise FailNow only sets Terminated.
	PanicOnTerminate bool
}

func (r *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (r *TestRecorder) FailNow() {
	r.Terminated = true
	if r.PanicOnTerminate {
		panic(r)
	}
}

func (r *TestRecorder) Helper() {}

// Err returns all recorded errors joined into one, or nil.
func (r *TestRecorder) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.New(strings.Join(r.Errors, ", "))
}
