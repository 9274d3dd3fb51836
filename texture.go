package anya

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	// ErrTextureExists is returned by Registry.Add when the key is taken.
	ErrTextureExists = errors.New("anya: texture already registered")
	// ErrTextureNotFound is returned when a key has no registry entry.
	ErrTextureNotFound = errors.New("anya: texture not found")
)

// Texture is a GPU image with a stable lookup key. Packed atlases also keep
// the CPU pixels they were composed from.
//
// Textures are reference counted: the registry entry is one owner and every
// Retain adds another. The GPU image is deallocated when the last owner
// releases it.
type Texture struct {
	Key string

	image  *ebiten.Image
	pixels *image.RGBA
	w, h   int
	refs   int

	// label identity, see Registry.Label
	source string
	font   *Font
}

// NewTexture uploads img and returns an unowned texture. Register it with
// Registry.Add or free it with Dispose.
func NewTexture(key string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Key:   key,
		image: ebiten.NewImageFromImage(img),
		w:     b.Dx(),
		h:     b.Dy(),
	}
}

// newImageTexture wraps an existing ebiten image.
func newImageTexture(key string, img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{Key: key, image: img, w: b.Dx(), h: b.Dy()}
}

// Image returns the underlying *ebiten.Image, or nil once disposed.
func (t *Texture) Image() *ebiten.Image {
	return t.image
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.w
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.h
}

// Pixels returns the CPU copy of the texture, or nil if none was kept.
func (t *Texture) Pixels() *image.RGBA {
	return t.pixels
}

// Refs returns the current owner count.
func (t *Texture) Refs() int {
	return t.refs
}

// Retain adds an owner and returns t.
func (t *Texture) Retain() *Texture {
	t.refs++
	return t
}

// Release drops an owner. The image is deallocated when no owners remain.
func (t *Texture) Release() {
	if t.refs > 0 {
		t.refs--
	}
	if t.refs == 0 {
		t.Dispose()
	}
}

// Dispose deallocates the image regardless of owners. The texture should not
// be drawn after calling Dispose.
func (t *Texture) Dispose() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	t.refs = 0
}

// Disposed reports whether the image has been deallocated.
func (t *Texture) Disposed() bool {
	return t.image == nil
}

// Registry owns loaded image and text textures and deduplicates them by key.
// It is not safe for concurrent use; all access happens on the game loop.
type Registry struct {
	textures map[string]*Texture
	packs    map[string]*Atlas
	logger   *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger uses slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		textures: make(map[string]*Texture),
		packs:    make(map[string]*Atlas),
		logger:   logger,
	}
}

// Load decodes the image at path and registers it under the path. A path that
// was already loaded returns the existing texture without touching the disk.
func (r *Registry) Load(path string) (*Texture, error) {
	if t, ok := r.textures[path]; ok {
		return t, nil
	}
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	t := NewTexture(path, img)
	r.textures[path] = t.Retain()
	r.logger.Debug("loaded texture", "path", path, "width", t.w, "height", t.h)
	return t, nil
}

// LoadKeyed is Load with a color key: pixels whose RGB equals key become
// fully transparent. Keyed loads are cached separately from plain loads.
func (r *Registry) LoadKeyed(path string, key Color) (*Texture, error) {
	k := key.toRGBA()
	cacheKey := fmt.Sprintf("%s#%02x%02x%02x", path, k.R, k.G, k.B)
	if t, ok := r.textures[cacheKey]; ok {
		return t, nil
	}
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	rgba := toRGBA(img)
	applyColorKey(rgba, k.R, k.G, k.B)
	t := NewTexture(cacheKey, rgba)
	t.pixels = rgba
	r.textures[cacheKey] = t.Retain()
	return t, nil
}

// Add registers t under key and takes an owner reference.
func (r *Registry) Add(key string, t *Texture) error {
	if _, ok := r.textures[key]; ok {
		r.logger.Warn("texture already exists", "key", key)
		return fmt.Errorf("%w: %q", ErrTextureExists, key)
	}
	t.Key = key
	r.textures[key] = t.Retain()
	return nil
}

// Get returns the texture registered under key.
func (r *Registry) Get(key string) (*Texture, bool) {
	t, ok := r.textures[key]
	return t, ok
}

// Remove drops the registry entry for key and releases its reference.
func (r *Registry) Remove(key string) error {
	t, ok := r.textures[key]
	if !ok {
		r.logger.Warn("failed to remove texture", "key", key)
		return fmt.Errorf("%w: %q", ErrTextureNotFound, key)
	}
	delete(r.textures, key)
	delete(r.packs, key)
	t.Release()
	return nil
}

// Len returns the number of registered textures.
func (r *Registry) Len() int {
	return len(r.textures)
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.textures))
	for k := range r.textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close releases every registry entry.
func (r *Registry) Close() {
	for key, t := range r.textures {
		t.Release()
		delete(r.textures, key)
	}
	clear(r.packs)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anya: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("anya: decode %s: %w", path, err)
	}
	return img, nil
}

func applyColorKey(img *image.RGBA, r, g, b uint8) {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == r && img.Pix[i+1] == g && img.Pix[i+2] == b {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		}
	}
}
