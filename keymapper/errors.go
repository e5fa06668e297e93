package keymapper

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is matched by errors.Is for any UnknownKeyError.
var ErrUnknownKey = errors.New("unknown key")

// ErrInvalidItem is matched by errors.Is for any InvalidItemError.
var ErrInvalidItem = errors.New("invalid item")

// UnknownKeyError is returned when a key was never issued, or belonged to an item that has since
// been removed.
type UnknownKeyError struct {
	Key string
}

func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %q", e.Key)
}

func (e UnknownKeyError) Is(target error) bool { return target == ErrUnknownKey }

// InvalidItemError is returned when an item cannot be registered, such as a nil pointer.
type InvalidItemError struct {
	Reason string
}

func (e InvalidItemError) Error() string {
	if e.Reason == "" {
		return "invalid item"
	}
	return "invalid item: " + e.Reason
}

func (e InvalidItemError) Is(target error) bool { return target == ErrInvalidItem }
