// Command cellscene is the full demo: a free-fly camera over a lit scene with a
// cycling skybox and a wireframe panel driven by Z, X and C
package main

import "github.com/lixenwraith/cellscene/demo"

func main() {
	demo.Main("cellscene", demo.Showcase)
}
