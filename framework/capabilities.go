package framework

// Capabilities is a list of strings that a component service reports to say which optional
// features it supports. The meanings are defined in the servicedef package.
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}

// HasAny returns true if at least one of the specified strings appears in the list.
func (cs Capabilities) HasAny(names ...string) bool {
	for _, n := range names {
		if cs.Has(n) {
			return true
		}
	}
	return false
}
