// Package serviceinfo describes what a component service reports about itself.
package serviceinfo

import "github.com/uisync/selection-harness/framework"

// ServiceInfo is the response to the initial status query.
type ServiceInfo struct {
	ServiceInfoBase

	// FullData is the raw response, which may contain properties beyond ServiceInfoBase.
	FullData []byte
}

// ServiceInfoBase has the properties every component service must provide.
type ServiceInfoBase struct {
	// Name identifies the implementation, such as "selectionservice".
	Name string `json:"name"`

	// Capabilities lists the optional features the service supports.
	Capabilities framework.Capabilities `json:"capabilities"`
}

func Empty() ServiceInfo {
	return ServiceInfo{}
}
