package sprite

import (
	"bytes"
	"path"
	"strings"
	"sync"

	"golang.org/x/image/webp"
)

const (
	// baseExt is the baseline encoding every asset is published in.
	baseExt = ".png"

	// variantExt is the smaller-footprint alternate encoding, substituted
	// when the runtime can decode it.
	variantExt = ".webp"
)

// probeImage is a 1x1 lossless WebP used to test decoder availability.
var probeImage = []byte{
	0x52, 0x49, 0x46, 0x46, 0x1a, 0x00, 0x00, 0x00, // "RIFF" + size
	0x57, 0x45, 0x42, 0x50, 0x56, 0x50, 0x38, 0x4c, // "WEBPVP8L"
	0x0d, 0x00, 0x00, 0x00, 0x2f, 0x00, 0x00, 0x00,
	0x10, 0x07, 0x10, 0x11, 0x11, 0x88, 0x88, 0xfe,
	0x07, 0x00,
}

// FormatNegotiator decides which encoded variant of a requested image to
// fetch.
//
// On first use it probes whether the alternate encoding (WebP) can be decoded
// by attempting to decode a small embedded reference image; the result is
// cached for the lifetime of the negotiator, so only the first call pays the
// probe cost. Probe failure is treated as "alternate not supported", never
// as an error.
//
// A FormatNegotiator is safe for concurrent use.
type FormatNegotiator struct {
	once      sync.Once
	supported bool

	// probe overrides the decode attempt; nil means the real WebP probe.
	probe func() bool
}

// NewFormatNegotiator creates a negotiator with the probe not yet run.
func NewFormatNegotiator() *FormatNegotiator {
	return &FormatNegotiator{}
}

// SelectVariant returns the locator of the preferred encoding for locator.
//
// If locator ends in the base extension (".png", case-insensitive) and the
// alternate encoding is supported, a sibling locator with the extension
// swapped to ".webp" is returned. In every other case, unknown extension or
// alternate unsupported, the original locator comes back unchanged.
// SelectVariant never fails.
func (n *FormatNegotiator) SelectVariant(locator string) string {
	ext := path.Ext(locator)
	if !strings.EqualFold(ext, baseExt) {
		return locator
	}
	if !n.variantSupported() {
		return locator
	}
	return locator[:len(locator)-len(ext)] + variantExt
}

func (n *FormatNegotiator) variantSupported() bool {
	n.once.Do(func() {
		probe := n.probe
		if probe == nil {
			probe = decodeProbeImage
		}
		n.supported = probe()
	})
	return n.supported
}

func decodeProbeImage() bool {
	_, err := webp.Decode(bytes.NewReader(probeImage))
	return err == nil
}
