package sprite

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Fetcher retrieves the raw encoded bytes for a source locator.
//
// Implementations must distinguish "resource not found" from a successful
// fetch by returning a non-nil error; the Loader relies on that to fall back
// from the alternate encoding to the original.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FileFetcher reads locators as filesystem paths.
type FileFetcher struct{}

// Fetch reads the file at locator.
func (FileFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	data, err := os.ReadFile(locator)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", locator, err)
	}
	return data, nil
}

// HTTPFetcher retrieves locators over HTTP or HTTPS.
type HTTPFetcher struct {
	// Client is the HTTP client to use; nil means http.DefaultClient.
	Client *http.Client
}

// Fetch issues a GET for locator and returns the response body.
// Any status other than 200 OK is a fetch failure.
func (f HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", locator, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}
	return body, nil
}

// LocatorFetcher dispatches on the locator's scheme: http and https URLs are
// fetched over the network, everything else is treated as a local path.
type LocatorFetcher struct {
	HTTP HTTPFetcher
	File FileFetcher
}

// Fetch retrieves locator via the appropriate underlying fetcher.
func (f LocatorFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if u, err := url.Parse(locator); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return f.HTTP.Fetch(ctx, locator)
	}
	return f.File.Fetch(ctx, locator)
}

// LoadListener is notified with the original locator after each successful
// load. Listeners are not called on cache hits or failed loads.
type LoadListener func(locator string)

// Loader fetches and decodes images through the FormatNegotiator, consulting
// and populating a BitmapCache.
//
// Decoded images are normalized to origin-anchored *image.NRGBA buffers and
// cached under the original locator regardless of which encoding variant was
// actually fetched, so future lookups by the original key hit.
//
// Loading the same locator from multiple goroutines may issue duplicate
// fetches; both converge to equivalent cache values, so the race is benign.
type Loader struct {
	cache   *BitmapCache
	formats *FormatNegotiator
	fetcher Fetcher

	mu        sync.Mutex
	nextID    int
	listeners map[int]LoadListener
}

// NewLoader creates a Loader over cache using the default LocatorFetcher,
// which resolves http/https URLs over the network and everything else from
// the local filesystem.
func NewLoader(cache *BitmapCache) *Loader {
	return NewLoaderWithFetcher(cache, LocatorFetcher{})
}

// NewLoaderWithFetcher creates a Loader over cache with a custom fetch
// strategy.
func NewLoaderWithFetcher(cache *BitmapCache, fetcher Fetcher) *Loader {
	return &Loader{
		cache:     cache,
		formats:   NewFormatNegotiator(),
		fetcher:   fetcher,
		listeners: make(map[int]LoadListener),
	}
}

// Subscribe registers fn for load-completion notifications and returns the
// function that unsubscribes it. Notifications are delivered synchronously on
// the loading goroutine, after the cache write and before Load returns.
func (l *Loader) Subscribe(fn LoadListener) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.listeners[id] = fn

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// Load returns the decoded bitmap for locator.
//
// A cache hit returns immediately with no I/O and no notification. Otherwise
// the Loader asks the FormatNegotiator for the preferred variant, fetches and
// decodes it, and silently falls back to the original locator if the variant
// attempt fails for any reason (including "variant does not exist"). On
// success the bitmap is cached under the original locator and every
// registered listener is notified exactly once before Load returns.
//
// Only when both the variant and the original fail does Load return an
// error, always of type *DecodeError. Nothing is cached and no notification
// fires on failure.
func (l *Loader) Load(ctx context.Context, locator string) (*image.NRGBA, error) {
	if img, ok := l.cache.Get(locator); ok {
		return img, nil
	}

	var img *image.NRGBA
	if variant := l.formats.SelectVariant(locator); variant != locator {
		// Variant failure is recovered by falling back to the original.
		if v, err := l.fetchDecode(ctx, variant); err == nil {
			img = v
		}
	}
	if img == nil {
		v, err := l.fetchDecode(ctx, locator)
		if err != nil {
			return nil, &DecodeError{Locator: locator, Err: err}
		}
		img = v
	}

	l.cache.Put(locator, img)
	l.notify(locator)
	return img, nil
}

// fetchDecode retrieves the encoded bytes for one concrete locator and
// decodes them into an owned, origin-anchored NRGBA buffer.
func (l *Loader) fetchDecode(ctx context.Context, locator string) (*image.NRGBA, error) {
	data, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", locator, err)
	}

	return imaging.Clone(img), nil
}

func (l *Loader) notify(locator string) {
	l.mu.Lock()
	fns := make([]LoadListener, 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(locator)
	}
}
