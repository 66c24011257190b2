// Command free-fly flies a camera around the showcase scene with WASD and the mouse
package main

import "github.com/lixenwraith/cellscene/demo"

func main() {
	demo.Main("free-fly", demo.FreeFly)
}
