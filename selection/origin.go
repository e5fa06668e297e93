package selection

// Origin says where a selection change came from.
type Origin int

const (
	// OriginProgrammatic is a change made by application code calling the model directly.
	OriginProgrammatic Origin = iota
	// OriginUser is a change requested by a remote client on behalf of the user.
	OriginUser
)

func (o Origin) String() string {
	switch o {
	case OriginProgrammatic:
		return "programmatic"
	case OriginUser:
		return "user"
	default:
		return "unknown"
	}
}

// ParseOrigin is the inverse of Origin.String.
func ParseOrigin(s string) (Origin, bool) {
	switch s {
	case "programmatic":
		return OriginProgrammatic, true
	case "user":
		return OriginUser, true
	default:
		return OriginProgrammatic, false
	}
}
