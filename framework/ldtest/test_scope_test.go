package ldtest

import (
	"testing"

	"github.com/uisync/selection-harness/framework"

	"github.com/stretchr/testify/assert"
)

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	myCapabilities := framework.Capabilities{"a", "b"}
	config := TestConfiguration{
		Context:      myContextValue,
		Capabilities: myCapabilities,
	}
	_ = Run(config, func(ldt *T) {
		assert.Equal(t, myContextValue, ldt.Context())
		assert.Equal(t, myCapabilities, ldt.Capabilities())

		ldt.Run("subtest", func(ldt1 *T) {
			assert.Equal(t, myContextValue, ldt1.Context())
			assert.Equal(t, myCapabilities, ldt1.Capabilities())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("", func(ldt *T) {
			executed1 = true
			ldt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("", func(ldt *T) {
			executed1 = true
			ldt.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				// this test passes
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				// this test passes
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 0)

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				// this test passes
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.Errorf("failed because %s", "reasons")
				ldt2.Errorf("and failed some more")
			})
			ldt0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Run("subtest1", func(ldt1 *T) {
				ldt1.Skip()
			})
			ldt0.Run("subtest2", func(ldt2 *T) {
				ldt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Len(t, result.Failures, 0)
	assert.Equal(t, []TestID{{"parent", "subtest1"}, {"parent", "subtest2"}}, result.Skipped)

	assert.Equal(t, TestID{"parent"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Nil(t, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(ldt *T) {
		ldt.Run("a", func(ldt0 *T) {
			ldt0.Run("sub1a", func(ldt1 *T) {})
			ldt0.Run("sub2a", func(ldt1 *T) {})
		})
		ldt.Run("b", func(ldt0 *T) {
			ldt0.Run("sub1b", func(ldt1 *T) {})
			ldt0.Run("sub2b", func(ldt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestTestScopeNonCriticalFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("flaky", func(ldt1 *T) {
			ldt1.NonCritical("listener ordering is not guaranteed by this service")
			ldt1.Errorf("events out of order")
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Failures, 0)
	if assert.Len(t, result.NonCriticalFailures, 1) {
		f := result.NonCriticalFailures[0]
		assert.Equal(t, TestID{"flaky"}, f.TestID)
		assert.True(t, f.NonCritical)
		assert.Equal(t, "listener ordering is not guaranteed by this service", f.Explanation)
	}
}

func TestTestScopeRunsCleanupsInReverseOrder(t *testing.T) {
	var calls []string
	_ = Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("x", func(ldt1 *T) {
			ldt1.Defer(func() { calls = append(calls, "first") })
			ldt1.Defer(func() { calls = append(calls, "second") })
			ldt1.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
}

func TestTestScopeRecoversFromUnexpectedPanic(t *testing.T) {
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("x", func(*T) { panic("boom") })
	})
	if assert.Len(t, result.Failures, 1) {
		assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
	}
}

func TestTestScopeRequireCapability(t *testing.T) {
	ran := false
	result := Run(TestConfiguration{Capabilities: framework.Capabilities{"single-select"}}, func(ldt *T) {
		ldt.Run("single", func(ldt1 *T) {
			ldt1.RequireCapability("single-select")
			ran = true
		})
		ldt.Run("multi", func(ldt1 *T) {
			ldt1.RequireCapability("multi-select")
			ran = false
		})
	})
	assert.True(t, ran)
	assert.Equal(t, []TestID{{"multi"}}, result.Skipped)
}

func TestTestScopeSubtestSeesParentDebugOutput(t *testing.T) {
	var childOutput framework.CapturedOutput
	logger := recordingTestLogger{finished: map[string]framework.CapturedOutput{}}
	_ = Run(TestConfiguration{TestLogger: &logger}, func(ldt *T) {
		ldt.Run("parent", func(ldt0 *T) {
			ldt0.Debug("before")
			ldt0.Run("child", func(ldt1 *T) {
				ldt0.DebugLogger().Printf("from parent")
				ldt1.Debug("from child")
			})
		})
	})
	childOutput = logger.finished["parent/child"]
	if assert.Len(t, childOutput, 3) {
		assert.Equal(t, "before", childOutput[0].Message)
		assert.Equal(t, "from parent", childOutput[1].Message)
		assert.Equal(t, "from child", childOutput[2].Message)
	}
}

func TestErrorfDropsAssertionTrace(t *testing.T) {
	message := "\n\tError Trace:\t/src/x_test.go:10\n\t            \t/src/y.go:20\n" +
		"\tError:      \tNot equal: \n\t            \texpected: 1\n\t            \tactual  : 2\n"
	result := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("x", func(ldt1 *T) { ldt1.Errorf("%s", message) })
	})
	if assert.Len(t, result.Failures, 1) {
		text := result.Failures[0].Errors[0].Error()
		assert.NotContains(t, text, "Error Trace")
		assert.NotContains(t, text, "x_test.go")
		assert.Contains(t, text, "Not equal")
		assert.Contains(t, text, "actual  : 2")
	}
}

type recordingTestLogger struct {
	nullTestLogger
	finished map[string]framework.CapturedOutput
}

func (r *recordingTestLogger) TestFinished(id TestID, _ TestResult, output framework.CapturedOutput) {
	r.finished[id.String()] = output
}
