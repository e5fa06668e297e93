package keymapper

import (
	"strconv"

	"github.com/google/uuid"
)

// KeyGenerator produces candidate keys. A KeyMapper skips any candidate that is already in use,
// so a generator does not need to know which keys are live.
type KeyGenerator interface {
	NextKey() string
}

// SequentialKeys generates "1", "2", "3" and so on. This is the default.
type SequentialKeys struct {
	last int
}

func (s *SequentialKeys) NextKey() string {
	s.last++
	return strconv.Itoa(s.last)
}

// RandomKeys generates random UUID strings, so that keys reveal nothing about the order in which
// items were registered.
type RandomKeys struct{}

func (RandomKeys) NextKey() string { return uuid.NewString() }
