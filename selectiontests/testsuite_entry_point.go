package selectiontests

import (
	"fmt"
	"os"

	"github.com/uisync/selection-harness/framework/harness"
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/servicedef"
)

// RunSelectionTestSuite runs every contract test that the service's capabilities allow.
func RunSelectionTestSuite(
	testHarness *harness.TestHarness,
	filters ldtest.RegexFilters,
	testLogger ldtest.TestLogger,
	inspectors PersistenceInspectors,
) ldtest.Results {
	capabilities := testHarness.ServiceInfo().Capabilities
	if !capabilities.HasAny(servicedef.CapabilitySingleSelect, servicedef.CapabilityMultiSelect) {
		return ldtest.Results{
			Failures: []ldtest.TestResult{
				{
					Errors: []error{
						fmt.Errorf(`component service has neither %q nor %q capability`,
							servicedef.CapabilitySingleSelect, servicedef.CapabilityMultiSelect),
					},
				},
			},
		}
	}

	fmt.Println()
	ldtest.PrintFilterDescription(os.Stdout, filters, servicedef.AllCapabilities(), capabilities)

	config := ldtest.TestConfiguration{
		Filter:       filters,
		Capabilities: capabilities,
		TestLogger:   testLogger,
		Context: SelectionTestContext{
			harness:    testHarness,
			inspectors: inspectors,
		},
	}

	return ldtest.Run(config, doAllSelectionTests)
}

func doAllSelectionTests(t *ldtest.T) {
	t.Run("single selection", doSingleSelectionTests)
	t.Run("multi selection", doMultiSelectionTests)
	t.Run("remote selection", doRemoteSelectionTests)
	t.Run("scenarios", doScenarioTests)
	t.Run("components", doComponentStateTests)
	t.Run("data provider", doDataProviderTests)
	t.Run("event stream", doEventStreamTests)
	t.Run("listener callbacks", doListenerCallbackTests)
	t.Run("persistence", doPersistenceTests)
}

// SelectionTestContext is the ldtest context value for this suite.
type SelectionTestContext struct {
	harness    *harness.TestHarness
	inspectors PersistenceInspectors
}

func requireContext(t *ldtest.T) SelectionTestContext {
	if c, ok := t.Context().(SelectionTestContext); ok {
		return c
	}
	t.Errorf("test context was not set")
	t.FailNow()
	return SelectionTestContext{}
}
