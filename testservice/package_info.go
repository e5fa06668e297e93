// Package testservice is a component service: an HTTP service that hosts selection components
// and lets a remote client drive them the way a browser would, by key, while also exposing the
// server-side API, listener events, and persistence. The contract suites in selectiontests run
// against it, and it is the reference for other implementations.
package testservice
