package asset

import (
	"fmt"
	"sync/atomic"
)

// Handle identifies an asset independent of whether it has finished loading
// The zero Handle refers to nothing
type Handle uint64

var nextHandle atomic.Uint64

// NewHandle allocates a process-unique handle
func NewHandle() Handle {
	return Handle(nextHandle.Add(1))
}

// Valid reports whether h refers to an asset slot
func (h Handle) Valid() bool {
	return h != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("Handle(%d)", uint64(h))
}

// LoadState tracks an asset through the server
type LoadState uint8

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "NotLoaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}
