// Package servicedef defines the REST protocol between the harness and a component service:
// status, component creation, commands, component state, and selection events.
//
// It is imported by both the harness and the Go component service in testservice, but another
// implementation only needs to follow the JSON it describes.
package servicedef
