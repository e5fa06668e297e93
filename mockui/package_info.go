// Package mockui contains the harness-side fixtures that stand in for a UI client: an endpoint
// that receives a component's listener callbacks, and a subscriber to its event stream.
package mockui
