package asset

import (
	"strings"

	"github.com/pkg/errors"
)

// CompressedFormats is a set of GPU block-compression families
type CompressedFormats uint8

const FormatsNone CompressedFormats = 0

const (
	FormatsASTCLDR CompressedFormats = 1 << iota
	FormatsBC
	FormatsETC2
)

// FormatsAll is every family the loaders know about
const FormatsAll = FormatsASTCLDR | FormatsBC | FormatsETC2

var formatNames = []struct {
	flag CompressedFormats
	name string
}{
	{FormatsASTCLDR, "astc_ldr"},
	{FormatsBC, "bc"},
	{FormatsETC2, "etc2"},
}

// Contains reports whether every family in other is also in f
// The empty set is contained in every set
func (f CompressedFormats) Contains(other CompressedFormats) bool {
	return f&other == other
}

func (f CompressedFormats) String() string {
	if f == FormatsNone {
		return "NONE"
	}
	var parts []string
	for _, fn := range formatNames {
		if f&fn.flag != 0 {
			parts = append(parts, strings.ToUpper(fn.name))
		}
	}
	return strings.Join(parts, "|")
}

// ParseCompressedFormats converts config names (none, astc_ldr, bc, etc2) into a set
func ParseCompressedFormats(names []string) (CompressedFormats, error) {
	var f CompressedFormats
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "none" || key == "" {
			continue
		}
		found := false
		for _, fn := range formatNames {
			if fn.name == key {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return FormatsNone, errors.Errorf("unknown compressed format %q", n)
		}
	}
	return f, nil
}
