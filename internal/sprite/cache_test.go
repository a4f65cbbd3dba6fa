package sprite

import (
	"image"
	"image/color"
	"testing"
)

func TestNewBitmapCache(t *testing.T) {
	cache := NewBitmapCache()
	if cache == nil {
		t.Fatal("NewBitmapCache returned nil")
	}
	if cache.bitmaps == nil {
		t.Fatal("NewBitmapCache did not initialize bitmaps map")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache Len: got %d, want 0", cache.Len())
	}
}

func TestBitmapCache_GetPut(t *testing.T) {
	cache := NewBitmapCache()

	if _, ok := cache.Get("missing.png"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	img := makeBitmap(4, 4, color.NRGBA{255, 0, 0, 255})
	cache.Put("a.png", img)

	got, ok := cache.Get("a.png")
	if !ok {
		t.Fatal("Get after Put missed")
	}
	if got != img {
		t.Error("Get returned a different bitmap than Put stored")
	}

	// Keys are compared as raw strings, no normalization.
	if _, ok := cache.Get("./a.png"); ok {
		t.Error("Get with a differently spelled path hit; keys must be string-equal")
	}
}

func TestBitmapCache_PutOverwrites(t *testing.T) {
	cache := NewBitmapCache()
	first := makeBitmap(2, 2, color.NRGBA{255, 0, 0, 255})
	second := makeBitmap(2, 2, color.NRGBA{0, 255, 0, 255})

	cache.Put("a.png", first)
	cache.Put("a.png", second)

	got, _ := cache.Get("a.png")
	if got != second {
		t.Error("Put did not replace the previous entry")
	}
	if cache.Len() != 1 {
		t.Errorf("Len after overwrite: got %d, want 1", cache.Len())
	}
}

func TestBitmapCache_EvictAndClear(t *testing.T) {
	cache := NewBitmapCache()
	img := makeBitmap(2, 2, color.NRGBA{0, 0, 255, 255})
	cache.Put("a.png", img)
	cache.Put("b.png", img)

	cache.Evict("a.png")
	if _, ok := cache.Get("a.png"); ok {
		t.Error("Get after Evict hit")
	}
	if _, ok := cache.Get("b.png"); !ok {
		t.Error("Evict removed an unrelated entry")
	}

	// Evicting a missing key is a no-op.
	cache.Evict("missing.png")

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestFilteredKey(t *testing.T) {
	key := FilteredKey("assets/tavern.png")
	if key == "assets/tavern.png" {
		t.Error("FilteredKey must differ from the raw locator")
	}
	if key != FilteredKey("assets/tavern.png") {
		t.Error("FilteredKey is not deterministic")
	}
	if FilteredKey("a.png") == FilteredKey("b.png") {
		t.Error("FilteredKey collides across distinct locators")
	}
}

func TestBoundsCache_AnalyzeCachesRecord(t *testing.T) {
	cache := NewBoundsCache()

	img := makeBitmap(10, 10, color.NRGBA{})
	fillRect(img, 2, 2, 3, 3, color.NRGBA{255, 0, 0, 255})

	first := cache.Analyze("a.png", img)
	if first.MinX != 2 || first.MaxX != 4 {
		t.Fatalf("unexpected bounds: %+v", first)
	}

	// Mutating the bitmap without a cache clear must not change the record:
	// the second call returns the stale cached result without re-scanning.
	fillRect(img, 0, 0, 10, 10, color.NRGBA{255, 0, 0, 255})
	second := cache.Analyze("a.png", img)
	if second != first {
		t.Error("Analyze re-scanned instead of returning the cached record")
	}

	cache.Evict("a.png")
	third := cache.Analyze("a.png", img)
	if third.MinX != 0 || third.MaxX != 9 {
		t.Errorf("Analyze after Evict returned stale bounds: %+v", third)
	}
}

func TestBoundsCache_GetPutClear(t *testing.T) {
	cache := NewBoundsCache()

	if _, ok := cache.Get("a.png"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	rec := &ContentBounds{MinX: 1, MaxX: 3}
	cache.Put("a.png", rec)
	got, ok := cache.Get("a.png")
	if !ok || got != rec {
		t.Error("Get after Put did not return the stored record")
	}

	cache.Clear()
	if _, ok := cache.Get("a.png"); ok {
		t.Error("Get after Clear hit")
	}
}

// makeBitmap creates a width x height origin-anchored bitmap filled with c.
func makeBitmap(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// fillRect paints the rectangle [x, x+w) x [y, y+h) of img with c.
func fillRect(img *image.NRGBA, x, y, w, h int, c color.NRGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			img.SetNRGBA(x+dx, y+dy, c)
		}
	}
}
