// Package framework contains the low-level harness infrastructure that the selection contract
// tests are built on. The base package has shared types such as Logger and Capabilities; the
// subpackages are harness (talking to a component service), ldtest (test scopes and results),
// helpers and opt.
//
// The general model is:
//
// 1. The test harness talks to a component service, which exposes a root endpoint for querying
// its status (GET) or creating a selection component (POST). Each component then has its own
// resource URL that accepts commands.
//
// 2. The test harness can expose any number of mock endpoints that the component service calls
// back, for instance to report selection events.
//
// 3. Test logic runs inside ldtest scopes, which work much like Go's testing.T but are driven by
// the harness command line rather than by "go test".
package framework
