package sprite

import "image"

// OpacityThreshold is the alpha value (out of 255) a pixel must exceed to
// count as visible content during bounds analysis.
const OpacityThreshold = 10

// ContentBounds describes where the visible content of a bitmap sits within
// the bitmap's own coordinate space, so a renderer can position the sprite
// correctly despite non-centered source art.
//
// MinX/MinY/MaxX/MaxY are inclusive pixel bounds of the opaque content. The
// center offsets are the signed displacement of the content's bounding-box
// midpoint from the image's geometric center, as a fraction of image
// width/height, in [-0.5, 0.5]. The content ratios are the fraction of
// image width/height the content occupies.
type ContentBounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`

	ContentWidth  int `json:"content_width"`
	ContentHeight int `json:"content_height"`

	CenterOffsetX float64 `json:"center_offset_x"`
	CenterOffsetY float64 `json:"center_offset_y"`

	ContentRatioX float64 `json:"content_ratio_x"`
	ContentRatioY float64 `json:"content_ratio_y"`
}

// AnalyzeBounds scans img and returns the tight bounds of its visible
// content, where a pixel is content iff its alpha exceeds OpacityThreshold.
//
// If no pixel qualifies (a fully transparent bitmap), the record degenerates
// to bounds spanning the whole image with zero offset and ratio 1.0. That is
// a defined fallback so an empty sprite still registers sensibly, not an
// error.
//
// AnalyzeBounds is a pure function; call it twice on the same bitmap and the
// records are identical. For cached analysis keyed by locator, use
// (*BoundsCache).Analyze.
func AnalyzeBounds(img *image.NRGBA) *ContentBounds {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		i := img.PixOffset(bounds.Min.X, bounds.Min.Y+y) + 3
		for x := 0; x < w; x++ {
			if img.Pix[i] > OpacityThreshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < minX {
		// No opaque content: whole-image fallback.
		return &ContentBounds{
			MinX: 0, MinY: 0, MaxX: w, MaxY: h,
			ContentWidth:  w,
			ContentHeight: h,
			ContentRatioX: 1,
			ContentRatioY: 1,
		}
	}

	cw := maxX - minX + 1
	ch := maxY - minY + 1

	// Content centroid is the bounding-box midpoint, not a weighted pixel
	// centroid.
	contentCX := float64(minX+maxX) / 2
	contentCY := float64(minY+maxY) / 2

	return &ContentBounds{
		MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		ContentWidth:  cw,
		ContentHeight: ch,
		CenterOffsetX: (contentCX - float64(w)/2) / float64(w),
		CenterOffsetY: (contentCY - float64(h)/2) / float64(h),
		ContentRatioX: float64(cw) / float64(w),
		ContentRatioY: float64(ch) / float64(h),
	}
}
