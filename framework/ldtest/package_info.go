// Package ldtest is a small test runner modeled on Go's testing package. Contract tests against
// a component service are ordinary application code rather than "go test" code, so they need
// their own scopes, filtering, and result reporting.
package ldtest
