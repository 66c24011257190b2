package render

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/cellscene/asset"
)

// Features is the capability set of the render device
type Features uint32

const (
	FeaturePolygonModeLine Features = 1 << iota
	FeatureTextureCompressionASTC
	FeatureTextureCompressionBC
	FeatureTextureCompressionETC2
)

var featureNames = map[string]Features{
	"polygon_mode_line":        FeaturePolygonModeLine,
	"texture_compression_astc": FeatureTextureCompressionASTC,
	"texture_compression_bc":   FeatureTextureCompressionBC,
	"texture_compression_etc2": FeatureTextureCompressionETC2,
}

// Contains reports whether every feature in other is present
func (f Features) Contains(other Features) bool {
	return f&other == other
}

// ParseFeatures converts config feature names into a set
func ParseFeatures(names []string) (Features, error) {
	var f Features
	for _, n := range names {
		flag, ok := featureNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, errors.Errorf("unknown device feature %q", n)
		}
		f |= flag
	}
	return f, nil
}

// Device describes what the software renderer accepts
type Device struct {
	Features Features
}

// NewSoftwareDevice returns a device that always draws lines, plus any
// texture compression families the configuration claims
func NewSoftwareDevice(extra Features) *Device {
	return &Device{Features: FeaturePolygonModeLine | extra}
}

// CompressedFormats maps compression features to the asset format families
func (d *Device) CompressedFormats() asset.CompressedFormats {
	formats := asset.FormatsNone
	if d.Features.Contains(FeatureTextureCompressionASTC) {
		formats |= asset.FormatsASTCLDR
	}
	if d.Features.Contains(FeatureTextureCompressionBC) {
		formats |= asset.FormatsBC
	}
	if d.Features.Contains(FeatureTextureCompressionETC2) {
		formats |= asset.FormatsETC2
	}
	return formats
}
