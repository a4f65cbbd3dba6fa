package sprite

import (
	"context"
	"image"
)

// Pipeline bundles a Loader with the bitmap and bounds caches into the
// end-to-end preparation path a renderer calls: load, key out the
// background, analyze content bounds.
//
// The zero value is not usable; construct with NewPipeline. All state is
// held in the explicit cache objects, so tests get isolation by building a
// fresh Pipeline per test while a host application keeps one process-wide
// instance.
type Pipeline struct {
	Loader  *Loader
	Bitmaps *BitmapCache
	Bounds  *BoundsCache
}

// NewPipeline creates a Pipeline with fresh caches and the default fetcher.
func NewPipeline() *Pipeline {
	bitmaps := NewBitmapCache()
	return &Pipeline{
		Loader:  NewLoader(bitmaps),
		Bitmaps: bitmaps,
		Bounds:  NewBoundsCache(),
	}
}

// Prepare runs the full pipeline for locator: load (through the format
// negotiator and bitmap cache), remove the background described by spec, and
// analyze the content bounds of the filtered result.
//
// The filtered bitmap is cached under FilteredKey(locator) and the bounds
// record under the plain locator, so repeat calls are pure cache reads.
// A spec change for an already-prepared locator is only observed after
// ClearCaches; staleness until then is the documented cache contract.
func (p *Pipeline) Prepare(ctx context.Context, locator string, spec BackgroundSpec) (*image.NRGBA, *ContentBounds, error) {
	img, err := p.Loader.Load(ctx, locator)
	if err != nil {
		return nil, nil, err
	}

	key := FilteredKey(locator)
	filtered, ok := p.Bitmaps.Get(key)
	if !ok {
		filtered, err = RemoveBackground(img, spec)
		if err != nil {
			return nil, nil, err
		}
		p.Bitmaps.Put(key, filtered)
	}

	return filtered, p.Bounds.Analyze(locator, filtered), nil
}

// ClearCaches empties both the bitmap and bounds caches.
func (p *Pipeline) ClearCaches() {
	p.Bitmaps.Clear()
	p.Bounds.Clear()
}
