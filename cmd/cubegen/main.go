// Command cubegen writes the procedural sky cubemaps the skybox demo cycles through
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/scene"
)

func main() {
	out := flag.String("out", "assets/textures", "Output directory")
	size := flag.Int("size", 64, "Face edge length in pixels")
	flag.Parse()

	written, err := writeCubemaps(*out, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cubegen: %v\n", err)
		os.Exit(1)
	}
	for _, p := range written {
		fmt.Println(p)
	}
}

// writeCubemaps writes the stacked PNG and the zstd-supercompressed RGBA8 KTX2
// variants; compressed block formats need an external encoder
func writeCubemaps(dir string, size int) ([]string, error) {
	if size <= 0 {
		return nil, errors.Errorf("size must be positive, got %d", size)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	sky := scene.GenerateSky(size)

	pngPath := filepath.Join(dir, "cubemap.png")
	if err := writeFile(pngPath, func(f *os.File) error { return asset.EncodePNG(f, sky) }); err != nil {
		return nil, err
	}

	cube := *sky
	cube.ReinterpretStacked2DAsArray(6)
	cube.View = asset.ViewCube
	ktxPath := filepath.Join(dir, "cubemap_rgba8.ktx2")
	if err := writeFile(ktxPath, func(f *os.File) error { return asset.EncodeKTX2(f, &cube, true) }); err != nil {
		return nil, err
	}

	return []string{pngPath, ktxPath}, nil
}

func writeFile(path string, encode func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := encode(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
