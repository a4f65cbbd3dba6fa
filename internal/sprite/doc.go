// Package sprite implements the asset-preparation pipeline for the MCP server.
//
// The pipeline turns an arbitrary bitmap (commonly an AI-generated sprite with
// an imperfect background and off-center subject) into a clean, transparent,
// tightly-registered game asset. It covers four stages:
//
//  1. Format negotiation: picking the most efficient available encoding of a
//     requested image (WebP when the runtime can decode it, PNG otherwise).
//  2. Loading and caching: fetching, decoding, and memoizing bitmaps keyed by
//     their source locator, with load-completion notifications for reactive
//     consumers.
//  3. Chroma keying: removing a known background color by Euclidean
//     color-distance thresholding.
//  4. Content-bounds analysis: computing the tight bounding box of the
//     remaining opaque content and the centering offsets a renderer needs to
//     position the sprite despite non-centered source art.
//
// # Bitmaps
//
// All pipeline stages operate on *image.NRGBA bitmaps anchored at the origin
// with a contiguous pixel buffer (len(Pix) == width*height*4). Images decoded
// by the Loader are normalized into this form. Bitmaps handed out by the
// caches are shared read-only views: callers must not mutate the returned
// pixel buffers.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner.
// X increases rightward and Y increases downward. ContentBounds min/max
// values are inclusive pixel indices.
//
// # Thread Safety
//
// BitmapCache, BoundsCache, the Loader's subscriber registry, and the
// FormatNegotiator's capability probe are all safe for concurrent use.
// RemoveBackground and AnalyzeBounds are pure functions over their inputs and
// can be called concurrently on different bitmaps. Concurrent loads of the
// same locator may both perform I/O; whichever decode completes first wins
// the cache slot and later completions overwrite it with an equivalent
// bitmap.
//
// # Error Handling
//
// Fetch or decode failure across every attempted variant surfaces as a
// *DecodeError. Failure to materialize a filtered bitmap surfaces as an
// *EncodeError. A bitmap with no opaque content is not an error: analysis
// returns a defined whole-image fallback record so callers can distinguish
// "empty sprite" from "load failed".
package sprite
