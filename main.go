package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/uisync/selection-harness/framework"
	"github.com/uisync/selection-harness/framework/harness"
	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/selectiontests"
)

const (
	version            = "1.0.0"
	defaultPort        = 8111
	statusQueryTimeout = time.Second * 10
)

func main() {
	fmt.Printf("selection-harness v%s\n", version)

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*ldtest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	inspectors, err := selectiontests.NewPersistenceInspectors(params.persistence)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to persistence store: %w", err)
	}

	testHarness, err := harness.NewTestHarness(
		params.serviceURL,
		params.host,
		params.port,
		statusQueryTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		return nil, err
	}

	testLogger := ldtest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := selectiontests.RunSelectionTestSuite(testHarness, params.filters, testLogger, inspectors)

	fmt.Println()
	ldtest.PrintResults(results)

	if params.stopServiceAtEnd {
		fmt.Println("Stopping component service")
		if err := testHarness.StopService(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop component service: %s\n", err)
		}
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return nil, err
		}
	}

	return &results, nil
}

func recordFailures(path string, results ldtest.Results) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %v", err)
	}
	defer func() { _ = f.Close() }()
	for _, test := range results.Failures {
		if _, err := fmt.Fprintln(f, test.TestID); err != nil {
			return err
		}
	}
	return nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := params.filters.MustNotMatch.Set(regexp.QuoteMeta(line)); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}
