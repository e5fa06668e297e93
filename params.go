package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/uisync/selection-harness/framework/ldtest"
	"github.com/uisync/selection-harness/selectiontests"
)

type commandParams struct {
	serviceURL       string
	port             int
	host             string
	filters          ldtest.RegexFilters
	skipFile         string
	recordFailures   string
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
	persistence      selectiontests.PersistenceSettings
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "component service URL")
	fs.StringVar(&c.host, "host", "localhost", "external hostname of the test harness")
	fs.IntVar(&c.port, "port", defaultPort, "port that the test harness will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file containing test IDs to skip, one per line")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the IDs of failed tests to this file")
	fs.BoolVar(&c.stopServiceAtEnd, "stop-service-at-end", false, "tell component service to exit after the test run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.persistence.RedisURL, "redis-url", "", "Redis URL for inspecting persisted selections")
	fs.StringVar(&c.persistence.ConsulAddress, "consul-address", "", "Consul address for inspecting persisted selections")
	fs.StringVar(&c.persistence.DynamoDBEndpoint, "dynamodb-endpoint", "",
		"DynamoDB endpoint for inspecting persisted selections")
	fs.StringVar(&c.persistence.DynamoDBRegion, "dynamodb-region", "", "DynamoDB region")
	fs.StringVar(&c.persistence.DynamoDBTable, "dynamodb-table", "", "DynamoDB table name")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}
