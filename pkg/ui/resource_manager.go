package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"sync"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/sync/semaphore"

	"github.com/decker502/flixrail/pkg/content"
)

// ImageState 海报加载状态
type ImageState int

const (
	// ImageMissing 尚未请求
	ImageMissing ImageState = iota
	// ImageLoading 正在后台获取/解码
	ImageLoading
	// ImageReady 可以绘制
	ImageReady
	// ImageFailed 获取或解码失败（不自动重试）
	ImageFailed
)

// DefaultImageWorkers 并发获取海报的最大数量
const DefaultImageWorkers = 4

// ErrNotImage 资源不是可识别的图片
var ErrNotImage = errors.New("asset is not a supported image")

// FontStyle 字体样式
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
)

type imageKey struct {
	ref  string
	w, h int
}

type imageEntry struct {
	state   ImageState
	decoded image.Image
	img     *ebiten.Image
	err     error
}

// ResourceManager is responsible for centralized management of UI resources.
// It provides loading and caching for fonts and poster images, ensuring that
// resources are loaded only once and reused across frames.
//
// Posters are fetched through a content.Source on background goroutines
// (bounded by a semaphore), type-sniffed, decoded (JPEG, PNG, GIF, WebP) and
// resized to the requested cell size. Conversion to *ebiten.Image happens on
// the game loop in Image.
//
// Thread Safety Note:
// Image, RequestImage and the font methods must be called from the game loop.
// Only the background decode touches the entry map under the mutex.
type ResourceManager struct {
	src content.Source
	log *zap.Logger
	ctx context.Context

	sem *semaphore.Weighted

	mu     sync.Mutex
	images map[imageKey]*imageEntry

	fontSources map[FontStyle]*text.GoTextFaceSource
	fontCache   map[string]*text.GoTextFace
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - ctx: cancels in-flight poster fetches when done
//   - src: the content source posters are fetched from
//   - log: logger, may be nil
func NewResourceManager(ctx context.Context, src content.Source, log *zap.Logger) *ResourceManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceManager{
		src:         src,
		log:         log,
		ctx:         ctx,
		sem:         semaphore.NewWeighted(DefaultImageWorkers),
		images:      make(map[imageKey]*imageEntry),
		fontSources: make(map[FontStyle]*text.GoTextFaceSource),
		fontCache:   make(map[string]*text.GoTextFace),
	}
}

// LoadFont returns a cached Go font face of the given style and size.
//
// Returns an error only if the embedded font data cannot be parsed.
func (rm *ResourceManager) LoadFont(style FontStyle, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%d:%.1f", style, size)
	if cachedFace, exists := rm.fontCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, ok := rm.fontSources[style]
	if !ok {
		data := goregular.TTF
		if style == FontBold {
			data = gobold.TTF
		}
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.fontSources[style] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontCache[cacheKey] = face
	return face, nil
}

// Font is LoadFont for callers that treat a broken embedded font as fatal.
func (rm *ResourceManager) Font(style FontStyle, size float64) *text.GoTextFace {
	face, err := rm.LoadFont(style, size)
	if err != nil {
		panic(err)
	}
	return face
}

// RequestImage starts a background fetch of ref resized to w×h, unless one
// has already been requested. Failed fetches are not retried until
// ForgetFailed is called.
func (rm *ResourceManager) RequestImage(ref string, w, h int) {
	if ref == "" || w <= 0 || h <= 0 {
		return
	}
	key := imageKey{ref: ref, w: w, h: h}

	rm.mu.Lock()
	if _, exists := rm.images[key]; exists {
		rm.mu.Unlock()
		return
	}
	entry := &imageEntry{state: ImageLoading}
	rm.images[key] = entry
	rm.mu.Unlock()

	go rm.fetch(key, entry)
}

func (rm *ResourceManager) fetch(key imageKey, entry *imageEntry) {
	if err := rm.sem.Acquire(rm.ctx, 1); err != nil {
		rm.finish(entry, nil, err)
		return
	}
	defer rm.sem.Release(1)

	data, err := rm.src.Asset(rm.ctx, key.ref)
	if err != nil {
		rm.finish(entry, nil, err)
		return
	}
	img, err := DecodePoster(data, key.w, key.h)
	if err != nil {
		err = fmt.Errorf("poster %s: %w", key.ref, err)
	}
	rm.finish(entry, img, err)
}

func (rm *ResourceManager) finish(entry *imageEntry, img image.Image, err error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if err != nil {
		entry.state = ImageFailed
		entry.err = err
		rm.log.Debug("Poster failed", zap.Error(err))
		return
	}
	entry.decoded = img
	entry.state = ImageReady
}

// Image returns the poster for ref at w×h, requesting it if needed.
// The image is nil unless the state is ImageReady.
func (rm *ResourceManager) Image(ref string, w, h int) (*ebiten.Image, ImageState) {
	key := imageKey{ref: ref, w: w, h: h}

	rm.mu.Lock()
	entry, exists := rm.images[key]
	if !exists {
		rm.mu.Unlock()
		rm.RequestImage(ref, w, h)
		return nil, ImageLoading
	}
	state := entry.state
	if state == ImageReady && entry.img == nil {
		entry.img = ebiten.NewImageFromImage(entry.decoded)
		entry.decoded = nil
	}
	img := entry.img
	rm.mu.Unlock()
	return img, state
}

// State returns the load state without requesting anything.
func (rm *ResourceManager) State(ref string, w, h int) (ImageState, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	entry, exists := rm.images[imageKey{ref: ref, w: w, h: h}]
	if !exists {
		return ImageMissing, nil
	}
	return entry.state, entry.err
}

// Loading reports how many posters are still being fetched.
func (rm *ResourceManager) Loading() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	n := 0
	for _, e := range rm.images {
		if e.state == ImageLoading {
			n++
		}
	}
	return n
}

// ForgetFailed drops failed entries so the next request retries them
// (used by the manual reload action).
func (rm *ResourceManager) ForgetFailed() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for k, e := range rm.images {
		if e.state == ImageFailed {
			delete(rm.images, k)
		}
	}
}

// Clear drops every cached poster.
func (rm *ResourceManager) Clear() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for k, e := range rm.images {
		if e.img != nil {
			e.img.Deallocate()
		}
		delete(rm.images, k)
	}
}

// DecodePoster sniffs the image type, decodes it and crops/resizes it to
// exactly w×h around the center.
func DecodePoster(data []byte, w, h int) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, ErrNotImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s (%s): %w", kind.Extension, format, err)
	}
	if w <= 0 || h <= 0 {
		return img, nil
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
}
