// Package selectiontests contains the contract tests that the harness runs against a component
// service.
//
// Each test creates components in the service through ComponentClient, drives them both the
// way application code would (the "api" commands) and the way a client would (by key), and
// checks the resulting state and the selection events the component reports. Tests that need an
// optional feature call RequireCapability, so they are skipped when the service does not
// report it.
package selectiontests
