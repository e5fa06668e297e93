package servicedef

import (
	"github.com/uisync/selection-harness/serviceinfo"
)

const (
	CapabilitySingleSelect = "single-select"
	CapabilityMultiSelect  = "multi-select"

	// CapabilityEventStream means GET {component}/events serves selection events as SSE.
	CapabilityEventStream = "event-stream"
	// CapabilityListenerCallbacks means a component POSTs selection events to its callbackUri.
	CapabilityListenerCallbacks = "listener-callbacks"
	// CapabilityDataProvider means the setItems command and data request counting are supported.
	CapabilityDataProvider = "data-provider"

	CapabilityPersistenceRedis    = "persistence-redis"
	CapabilityPersistenceConsul   = "persistence-consul"
	CapabilityPersistenceDynamoDB = "persistence-dynamodb"
)

// AllCapabilities lists every capability the harness knows about.
func AllCapabilities() []string {
	return []string{
		CapabilitySingleSelect,
		CapabilityMultiSelect,
		CapabilityEventStream,
		CapabilityListenerCallbacks,
		CapabilityDataProvider,
		CapabilityPersistenceRedis,
		CapabilityPersistenceConsul,
		CapabilityPersistenceDynamoDB,
	}
}

// StatusRep is the response to GET on the service's base URL.
type StatusRep struct {
	serviceinfo.ServiceInfoBase
	Version string `json:"version,omitempty"`
}

type ComponentKind string

const (
	KindRadioButtonGroup ComponentKind = "radioButtonGroup"
	KindListSelect       ComponentKind = "listSelect"
)

type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreRedis    StoreKind = "redis"
	StoreConsul   StoreKind = "consul"
	StoreDynamoDB StoreKind = "dynamodb"
)

// Capability is the capability a service must report to support this store, or "" for memory.
func (k StoreKind) Capability() string {
	switch k {
	case StoreRedis:
		return CapabilityPersistenceRedis
	case StoreConsul:
		return CapabilityPersistenceConsul
	case StoreDynamoDB:
		return CapabilityPersistenceDynamoDB
	default:
		return ""
	}
}
