package component

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Wireframe colors used by the demo panel
var (
	White = colorful.Color{R: 1, G: 1, B: 1}
	Pink  = colorful.Color{R: 1, G: 0.08, B: 0.58}
	Green = colorful.Color{R: 0, G: 1, B: 0}
	Red   = colorful.Color{R: 1, G: 0, B: 0}
)

// WireframeComponent forces wireframe drawing regardless of the global flag
type WireframeComponent struct{}

// NoWireframeComponent suppresses wireframe drawing even when the global flag is set
type NoWireframeComponent struct{}

// WireframeColorComponent overrides the global wireframe color for one entity
type WireframeColorComponent struct {
	Color colorful.Color
}

// WireframeButtonComponent marks the panel entity that carries the status label
type WireframeButtonComponent struct{}
