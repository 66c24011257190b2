// Command voxel-sandbox renders generated voxel terrain with the wireframe panel
package main

import "github.com/lixenwraith/cellscene/demo"

func main() {
	demo.Main("voxel-sandbox", demo.VoxelSandbox)
}
