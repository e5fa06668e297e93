// Package callbackfixtures defines the requests a component service sends back to the harness
// through a component's callback URI.
package callbackfixtures
