package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deckmd/deckmd/internal/domain/ports"
)

// DefaultMaxBytes is the default ceiling for embedded local images (5 MB).
const DefaultMaxBytes = 5 * 1024 * 1024

// mimeTypes maps the supported raster extensions. Anything else (SVG,
// WebP, BMP, ...) is rejected, not converted.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// Resolver reads and validates local images, caching results keyed by
// resolved absolute path. Entries are invalidated whenever a fresh stat
// shows a different mtime or size. The lock makes the cache safe under the
// serve loop, where recompiles can overlap HTTP reads.
type Resolver struct {
	basePath string
	maxBytes int64

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	result  *ports.ResolvedImage
}

// NewResolver creates a resolver rooted at basePath. maxBytes <= 0 selects
// the default ceiling.
func NewResolver(basePath string, maxBytes int64) *Resolver {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Resolver{
		basePath: basePath,
		maxBytes: maxBytes,
		cache:    make(map[string]cacheEntry),
	}
}

// Resolve reads the image at ref, validating extension and size. Relative
// references resolve against the base path.
func (r *Resolver) Resolve(ref string) (*ports.ResolvedImage, error) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.basePath, path)
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > r.maxBytes {
		return nil, fmt.Errorf("image %s exceeds %d byte limit (%d bytes)", path, r.maxBytes, info.Size())
	}

	r.mu.RLock()
	entry, hit := r.cache[path]
	r.mu.RUnlock()
	if hit && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result := &ports.ResolvedImage{
		Path:     path,
		MimeType: mimeType,
		Data:     data,
	}

	r.mu.Lock()
	r.cache[path] = cacheEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		result:  result,
	}
	r.mu.Unlock()

	return result, nil
}

// Ensure Resolver implements ports.ImageResolver.
var _ ports.ImageResolver = (*Resolver)(nil)
