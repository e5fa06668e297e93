package ldtest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uisync/selection-harness/framework"

	"github.com/fatih/color"
)

var (
	consoleTestErrorColor   = color.New(color.FgYellow)            //nolint:gochecknoglobals
	consoleTestFailedColor  = color.New(color.FgRed)               //nolint:gochecknoglobals
	consoleNonCriticalColor = color.New(color.FgMagenta)           //nolint:gochecknoglobals
	consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
	consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals
	allTestsPassedColor     = color.New(color.FgGreen)             //nolint:gochecknoglobals
)

// TestLogger receives progress notifications from Run.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                        {}
func (n nullTestLogger) TestError(TestID, error)                                   {}
func (n nullTestLogger) TestFinished(TestID, TestResult, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                                {}

// ConsoleTestLogger writes colorized progress to standard output.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = consoleTestErrorColor.Printf("  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	failed := result.Failed()
	switch {
	case failed && result.NonCritical:
		_, _ = consoleNonCriticalColor.Printf("  FAILED (non-critical: %s): %s\n", result.Explanation, id)
	case failed:
		_, _ = consoleTestFailedColor.Printf("  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		_, _ = consoleDebugOutputColor.Println(debugOutput.ToString("    DEBUG "))
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		_, _ = consoleTestSkippedColor.Printf("  SKIPPED: %s\n", id)
	} else {
		_, _ = consoleTestSkippedColor.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes the final summary; failures go to standard error.
func PrintResults(results Results) {
	printResultsTo(os.Stdout, os.Stderr, results)
}

func printResultsTo(out, errOut io.Writer, results Results) {
	if len(results.NonCriticalFailures) != 0 {
		_, _ = consoleNonCriticalColor.Fprintf(out, "NON-CRITICAL FAILURES (%d):\n", len(results.NonCriticalFailures))
		for _, f := range results.NonCriticalFailures {
			_, _ = consoleNonCriticalColor.Fprintf(out, "  * %s (%s)\n", f.TestID, f.Explanation)
		}
	}
	if results.OK() {
		_, _ = allTestsPassedColor.Fprintf(out, "All tests passed (%s)\n", results.Summary())
		return
	}
	_, _ = consoleTestFailedColor.Fprintf(errOut, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		_, _ = consoleTestFailedColor.Fprintf(errOut, "  * %s\n", f.TestID)
	}
	_, _ = fmt.Fprintln(errOut, results.Summary())
}
