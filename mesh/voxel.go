package mesh

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// BlockType identifies the material of one voxel
type BlockType uint8

const (
	Air BlockType = iota
	Grass
	Dirt
	Stone
	Water
	Gold
)

// WaterLevel is the height below which empty columns fill with water
const WaterLevel = 5

var blockColors = [...]colorful.Color{
	Air:   {},
	Grass: {R: 0.33, G: 0.62, B: 0.22},
	Dirt:  {R: 0.47, G: 0.33, B: 0.20},
	Stone: {R: 0.50, G: 0.50, B: 0.52},
	Water: {R: 0.20, G: 0.38, B: 0.80},
	Gold:  {R: 0.95, G: 0.78, B: 0.15},
}

// Color returns the display color of a block type
func (b BlockType) Color() colorful.Color {
	if int(b) < len(blockColors) {
		return blockColors[b]
	}
	return colorful.Color{R: 1, B: 1}
}

// Solid reports whether the block occupies space
func (b BlockType) Solid() bool {
	return b != Air
}

// Chunk is a cube of Size^3 voxels placed at integer chunk coordinates
type Chunk struct {
	Size    int
	X, Y, Z int32
	blocks  []BlockType
}

// NewChunk creates an all-air chunk at chunk coordinates (x, y, z)
func NewChunk(x, y, z int32, size int) *Chunk {
	return &Chunk{
		Size:   size,
		X:      x,
		Y:      y,
		Z:      z,
		blocks: make([]BlockType, size*size*size),
	}
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < c.Size && y < c.Size && z < c.Size
}

func (c *Chunk) index(x, y, z int) int {
	return (y*c.Size+z)*c.Size + x
}

// Set writes a block; out-of-bounds writes are ignored
func (c *Chunk) Set(x, y, z int, b BlockType) {
	if c.inBounds(x, y, z) {
		c.blocks[c.index(x, y, z)] = b
	}
}

// Get reads a block; out-of-bounds reads return Air
func (c *Chunk) Get(x, y, z int) BlockType {
	if !c.inBounds(x, y, z) {
		return Air
	}
	return c.blocks[c.index(x, y, z)]
}

// Origin returns the world position of the chunk's minimum corner
func (c *Chunk) Origin() mgl32.Vec3 {
	s := float32(c.Size)
	return mgl32.Vec3{float32(c.X) * s, float32(c.Y) * s, float32(c.Z) * s}
}

// WaveHeight is the default sine/cosine terrain profile
func WaveHeight(x, z int) int {
	return int(math.Sin(float64(x)/5.0)*3.0 + math.Cos(float64(z)/5.0)*3.0 + 8)
}

// FillHeightmap fills each column from the bottom up to height(x, z)
// Top layer is grass, the next three are dirt, the rest stone; low columns flood to WaterLevel
func (c *Chunk) FillHeightmap(height func(x, z int) int) {
	for x := 0; x < c.Size; x++ {
		for z := 0; z < c.Size; z++ {
			h := height(x, z)
			if h < 0 {
				h = 0
			}
			if h >= c.Size {
				h = c.Size - 1
			}

			for y := 0; y < h; y++ {
				switch {
				case y == h-1:
					c.Set(x, y, z, Grass)
				case y > h-4:
					c.Set(x, y, z, Dirt)
				default:
					c.Set(x, y, z, Stone)
				}
			}

			for y := h; y < WaterLevel; y++ {
				c.Set(x, y, z, Water)
			}
		}
	}
}

// ScatterGold replaces surface grass blocks with gold at the given probability
func (c *Chunk) ScatterGold(r *rand.Rand, chance float64) {
	for x := 0; x < c.Size; x++ {
		for z := 0; z < c.Size; z++ {
			for y := c.Size - 1; y >= 0; y-- {
				b := c.Get(x, y, z)
				if b == Air {
					continue
				}
				if b == Grass && r.Float64() < chance {
					c.Set(x, y, z, Gold)
				}
				break
			}
		}
	}
}

// face describes one of the six voxel sides: neighbor offset, outward normal and
// corners on the unit cube, counter-clockwise seen from outside
type face struct {
	dx, dy, dz int
	normal     mgl32.Vec3
	corners    [4]mgl32.Vec3
}

var voxelFaces = [6]face{
	{1, 0, 0, mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{-1, 0, 0, mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{0, 1, 0, mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{0, -1, 0, mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{0, 0, 1, mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{0, 0, -1, mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
}

// GenerateMesh emits one quad per solid face whose neighbor is air or outside the chunk
// Positions are chunk-local; place the chunk with a Transform at Origin()
func (c *Chunk) GenerateMesh() *Mesh {
	m := &Mesh{}
	for y := 0; y < c.Size; y++ {
		for z := 0; z < c.Size; z++ {
			for x := 0; x < c.Size; x++ {
				b := c.Get(x, y, z)
				if !b.Solid() {
					continue
				}
				color := b.Color()
				base := mgl32.Vec3{float32(x), float32(y), float32(z)}

				for _, f := range voxelFaces {
					if c.Get(x+f.dx, y+f.dy, z+f.dz).Solid() {
						continue
					}
					var corners [4]mgl32.Vec3
					for i, corner := range f.corners {
						corners[i] = base.Add(corner)
					}
					m.quad(corners, f.normal, &color)
				}
			}
		}
	}
	return m
}

// FaceCount returns the number of quads GenerateMesh would emit
func (c *Chunk) FaceCount() int {
	count := 0
	for y := 0; y < c.Size; y++ {
		for z := 0; z < c.Size; z++ {
			for x := 0; x < c.Size; x++ {
				if !c.Get(x, y, z).Solid() {
					continue
				}
				for _, f := range voxelFaces {
					if !c.Get(x+f.dx, y+f.dy, z+f.dz).Solid() {
						count++
					}
				}
			}
		}
	}
	return count
}
