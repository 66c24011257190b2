package asset

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

var ktx2Identifier = [12]byte{0xAB, 'K', 'T', 'X', ' ', '2', '0', 0xBB, '\r', '\n', 0x1A, '\n'}

// Vulkan format codes relevant to the demo textures
const (
	vkFormatR8G8B8A8Unorm = 37
	vkFormatR8G8B8A8Srgb  = 43
)

// KTX2 supercompression schemes
const (
	superNone     = 0
	superBasisLZ  = 1
	superZstd     = 2
	superZLIB     = 3
	ktx2HeaderLen = 80
	ktx2LevelLen  = 24
)

// MaxKTX2Bytes bounds the decoded size of level 0; larger headers are rejected
// before anything is allocated
const MaxKTX2Bytes = 256 << 20

type ktx2Header struct {
	VkFormat               uint32
	TypeSize               uint32
	PixelWidth             uint32
	PixelHeight            uint32
	PixelDepth             uint32
	LayerCount             uint32
	FaceCount              uint32
	LevelCount             uint32
	SupercompressionScheme uint32
	DfdByteOffset          uint32
	DfdByteLength          uint32
	KvdByteOffset          uint32
	KvdByteLength          uint32
	SgdByteOffset          uint64
	SgdByteLength          uint64
}

type ktx2Level struct {
	ByteOffset             uint64
	ByteLength             uint64
	UncompressedByteLength uint64
}

var (
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

func sharedZstdDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxKTX2Bytes))
	})
	return zstdDecoder, zstdDecoderErr
}

// vkFormatFamily names the block-compression family of a Vulkan format code
func vkFormatFamily(vk uint32) (CompressedFormats, string) {
	switch {
	case vk >= 131 && vk <= 146:
		return FormatsBC, "BC"
	case vk >= 147 && vk <= 156:
		return FormatsETC2, "ETC2"
	case vk >= 157 && vk <= 184:
		return FormatsASTCLDR, "ASTC"
	}
	return FormatsNone, "uncompressed"
}

// DecodeKTX2 reads mip level 0 of a KTX2 texture
// Only uncompressed R8G8B8A8 data is decodable, optionally zstd supercompressed
// Six-face textures come back with View set to Cube
func DecodeKTX2(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read ktx2")
	}
	if len(data) < ktx2HeaderLen || !bytes.Equal(data[:12], ktx2Identifier[:]) {
		return nil, errors.New("not a ktx2 file")
	}

	var hdr ktx2Header
	if err := binary.Read(bytes.NewReader(data[12:ktx2HeaderLen]), binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrap(err, "read ktx2 header")
	}

	var format TextureFormat
	switch hdr.VkFormat {
	case vkFormatR8G8B8A8Unorm:
		format = FormatRGBA8Unorm
	case vkFormatR8G8B8A8Srgb:
		format = FormatRGBA8Srgb
	default:
		_, family := vkFormatFamily(hdr.VkFormat)
		return nil, errors.Wrapf(ErrUnsupportedFormat, "ktx2 vkFormat %d (%s)", hdr.VkFormat, family)
	}

	switch hdr.SupercompressionScheme {
	case superNone, superZstd:
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "ktx2 supercompression scheme %d", hdr.SupercompressionScheme)
	}

	if hdr.PixelWidth == 0 || hdr.PixelHeight == 0 {
		return nil, errors.New("ktx2 has zero extent")
	}
	if hdr.PixelDepth > 1 {
		return nil, errors.Wrap(ErrUnsupportedFormat, "ktx2 3d textures")
	}
	faces := max(hdr.FaceCount, 1)
	if faces != 1 && faces != 6 {
		return nil, errors.Errorf("ktx2 face count %d", hdr.FaceCount)
	}
	layers := max(hdr.LayerCount, 1)

	if len(data) < ktx2HeaderLen+ktx2LevelLen {
		return nil, errors.New("ktx2 level index truncated")
	}
	var level ktx2Level
	if err := binary.Read(bytes.NewReader(data[ktx2HeaderLen:ktx2HeaderLen+ktx2LevelLen]), binary.LittleEndian, &level); err != nil {
		return nil, errors.Wrap(err, "read ktx2 level index")
	}
	end := level.ByteOffset + level.ByteLength
	if end > uint64(len(data)) || end < level.ByteOffset {
		return nil, errors.Errorf("ktx2 level 0 out of range: offset %d length %d", level.ByteOffset, level.ByteLength)
	}
	payload := data[level.ByteOffset:end]

	expected, ok := boundedProduct(MaxKTX2Bytes, uint64(hdr.PixelWidth), uint64(hdr.PixelHeight), uint64(layers), uint64(faces), 4)
	if !ok {
		return nil, errors.Errorf("ktx2 %dx%d x%d layers x%d faces exceeds %d bytes", hdr.PixelWidth, hdr.PixelHeight, layers, faces, MaxKTX2Bytes)
	}
	if level.UncompressedByteLength != expected {
		return nil, errors.Errorf("ktx2 level 0 declares %d bytes, extent needs %d", level.UncompressedByteLength, expected)
	}
	if hdr.SupercompressionScheme == superZstd {
		dec, err := sharedZstdDecoder()
		if err != nil {
			return nil, errors.Wrap(err, "create zstd decoder")
		}
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, errors.Wrap(err, "zstd decode ktx2 level 0")
		}
	}
	if uint64(len(payload)) != expected {
		return nil, errors.Errorf("ktx2 level 0 has %d bytes, expected %d", len(payload), expected)
	}

	img := &Image{
		Width:  int(hdr.PixelWidth),
		Height: int(hdr.PixelHeight),
		Layers: int(layers * faces),
		Format: format,
		View:   ViewD2,
		Pixels: payload,
	}
	switch {
	case faces == 6 && layers == 1:
		img.View = ViewCube
	case img.Layers > 1:
		img.View = ViewD2Array
	}
	return img, nil
}

// boundedProduct multiplies factors, reporting false once the product passes limit
func boundedProduct(limit uint64, factors ...uint64) (uint64, bool) {
	p := uint64(1)
	for _, f := range factors {
		if f != 0 && p > limit/f {
			return 0, false
		}
		p *= f
	}
	return p, p <= limit
}

// Data format descriptor constants for the basic block
const (
	dfdModelRGBSDA    = 1
	dfdPrimariesBT709 = 1
	dfdTransferLinear = 1
	dfdTransferSRGB   = 2
	dfdChannelAlpha   = 15
	dfdSampleLinear   = 0x10
	dfdBlockLen       = 24 + 4*16
	dfdLen            = 4 + dfdBlockLen
)

// rgba8DFD is the data format descriptor of an 8-bit RGBA texture: total size,
// the basic block header and one sample per channel
func rgba8DFD(format TextureFormat) []byte {
	transfer := uint32(dfdTransferLinear)
	if format == FormatRGBA8Srgb {
		transfer = dfdTransferSRGB
	}
	words := []uint32{
		dfdLen,
		0,                   // vendor 0 (Khronos), descriptor type 0 (basic)
		2 | dfdBlockLen<<16, // version 2, block size
		dfdModelRGBSDA | dfdPrimariesBT709<<8 | transfer<<16,
		0, // 1x1x1 texel block
		4, // bytes in plane 0
		0,
	}
	for i, channel := range []uint32{0, 1, 2, dfdChannelAlpha} {
		if channel == dfdChannelAlpha && transfer == dfdTransferSRGB {
			channel |= dfdSampleLinear
		}
		words = append(words,
			uint32(i*8)|7<<16|channel<<24, // bit offset, bit length-1, channel
			0,                             // sample position
			0,                             // lower
			255,                           // upper
		)
	}
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// EncodeKTX2 writes img as a single-level KTX2 texture with its data format
// descriptor. Cube images are written with six faces.
func EncodeKTX2(w io.Writer, img *Image, supercompress bool) error {
	vk := uint32(vkFormatR8G8B8A8Unorm)
	if img.Format == FormatRGBA8Srgb {
		vk = vkFormatR8G8B8A8Srgb
	}

	hdr := ktx2Header{
		VkFormat:    vk,
		TypeSize:    1,
		PixelWidth:  uint32(img.Width),
		PixelHeight: uint32(img.Height),
		FaceCount:   1,
		LevelCount:  1,
	}
	switch {
	case img.View == ViewCube:
		if img.Layers != 6 {
			return errors.Errorf("cube image needs 6 layers, got %d", img.Layers)
		}
		hdr.FaceCount = 6
	case img.Layers > 1:
		hdr.LayerCount = uint32(img.Layers)
	}

	payload := img.Pixels
	if supercompress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.Wrap(err, "create zstd encoder")
		}
		payload = enc.EncodeAll(img.Pixels, nil)
		_ = enc.Close()
		hdr.SupercompressionScheme = superZstd
	}

	dfd := rgba8DFD(img.Format)
	hdr.DfdByteOffset = ktx2HeaderLen + ktx2LevelLen
	hdr.DfdByteLength = uint32(len(dfd))

	level := ktx2Level{
		// Descriptor length is a multiple of 4, keeping texel alignment
		ByteOffset:             uint64(hdr.DfdByteOffset + hdr.DfdByteLength),
		ByteLength:             uint64(len(payload)),
		UncompressedByteLength: uint64(len(img.Pixels)),
	}

	var buf bytes.Buffer
	buf.Write(ktx2Identifier[:])
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return errors.Wrap(err, "write ktx2 header")
	}
	if err := binary.Write(&buf, binary.LittleEndian, &level); err != nil {
		return errors.Wrap(err, "write ktx2 level index")
	}
	buf.Write(dfd)
	buf.Write(payload)

	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "write ktx2")
}
