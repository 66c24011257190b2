package component

import (
	"github.com/lucasb-eyer/go-colorful"
)

// TextStyle positions a label in terminal cells from the top-left corner
type TextStyle struct {
	Top   int
	Left  int
	Color colorful.Color
}

// TextComponent is an on-screen label; newlines start a new row at Left
type TextComponent struct {
	Value string
	Style TextStyle
}
