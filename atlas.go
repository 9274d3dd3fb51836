package anya

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"
)

var (
	// ErrEmptyPack is returned when a pack source contains no frames.
	ErrEmptyPack = errors.New("anya: pack has no frames")
	// ErrFrameSizeMismatch is returned when frames in one pack differ in size.
	ErrFrameSizeMismatch = errors.New("anya: frame size mismatch")
)

// defaultGIFDelay is used for GIF frames that declare no delay.
const defaultGIFDelay = 100 * time.Millisecond

// Frame is a clip rectangle into an atlas texture.
type Frame struct {
	X, Y, Width, Height int
}

// Rect returns the frame as an image.Rectangle.
func (f Frame) Rect() image.Rectangle {
	return image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
}

// Sheet is a CPU-side pack: frames of one size composed left to right into a
// single canvas, in source order.
type Sheet struct {
	Canvas     *Canvas
	Names      []string
	CellWidth  int
	CellHeight int
	// Delays holds per-frame display times when the source carried them (GIF).
	Delays []time.Duration

	frames []Frame
}

// Len returns the number of frames.
func (s *Sheet) Len() int {
	return len(s.frames)
}

// Frames returns a copy of the frame table in source order.
func (s *Sheet) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Frame returns the frame recorded for a source name.
func (s *Sheet) Frame(name string) (Frame, bool) {
	for i, n := range s.Names {
		if n == name {
			return s.frames[i], true
		}
	}
	return Frame{}, false
}

// imageExts lists the file extensions PackDir considers frames.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".webp": true,
}

// PackDir loads every image file in dir, sorted lexicographically by file
// name, and concatenates them left to right. The first image decides the cell
// size; any other size fails the whole pack.
func PackDir(dir string) (*Sheet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("anya: read pack dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPack, dir)
	}
	sort.Strings(names)

	images := make([]image.Image, len(names))
	var cellW, cellH int
	for i, name := range names {
		img, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if i == 0 {
			cellW, cellH = b.Dx(), b.Dy()
		} else if b.Dx() != cellW || b.Dy() != cellH {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrFrameSizeMismatch, name, b.Dx(), b.Dy(), cellW, cellH)
		}
		images[i] = img
	}

	s := newStripSheet(len(images), cellW, cellH)
	for i, img := range images {
		s.Canvas.DrawImageAt(img, i*cellW, 0, BlendNone)
	}
	s.Names = names
	return s, nil
}

// PackGIF decodes every frame of an animated GIF, applying frame disposal,
// and packs the composed frames the same way PackDir does.
func PackGIF(r io.Reader) (*Sheet, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("anya: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyPack
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	s := newStripSheet(len(g.Image), w, h)
	s.Names = make([]string, len(g.Image))
	s.Delays = make([]time.Duration, len(g.Image))

	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	var previous []byte
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = append(previous[:0], frame.Pix...)
		}

		draw.Draw(frame, p.Bounds(), p, p.Bounds().Min, draw.Over)
		s.Canvas.DrawImageAt(frame, i*w, 0, BlendNone)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(frame, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(frame.Pix, previous)
		}

		s.Names[i] = fmt.Sprintf("frame_%04d", i)
		s.Delays[i] = defaultGIFDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			s.Delays[i] = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
	}
	return s, nil
}

// newStripSheet allocates a (cellW*n, cellH) canvas and its frame table.
func newStripSheet(n, cellW, cellH int) *Sheet {
	s := &Sheet{
		Canvas:     NewCanvas(cellW*n, cellH),
		CellWidth:  cellW,
		CellHeight: cellH,
		frames:     make([]Frame, n),
	}
	for i := range s.frames {
		s.frames[i] = Frame{X: i * cellW, Y: 0, Width: cellW, Height: cellH}
	}
	return s
}

// --- Manifest (TexturePacker hash format) ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
	Duration         int      `json:"duration,omitempty"` // milliseconds
}

type jsonMeta struct {
	App   string   `json:"app"`
	Image string   `json:"image"`
	Size  jsonSize `json:"size"`
}

type jsonManifest struct {
	Frames map[string]jsonFrame `json:"frames"`
	Meta   jsonMeta             `json:"meta"`
}

// Manifest returns TexturePacker hash-format JSON describing the sheet, with
// imageName recorded as the page image.
func (s *Sheet) Manifest(imageName string) ([]byte, error) {
	m := jsonManifest{
		Frames: make(map[string]jsonFrame, len(s.frames)),
		Meta: jsonMeta{
			App:   "anya",
			Image: imageName,
			Size:  jsonSize{W: s.Canvas.Width(), H: s.Canvas.Height()},
		},
	}
	for i, f := range s.frames {
		jf := jsonFrame{
			Frame:            jsonRect{X: f.X, Y: f.Y, W: f.Width, H: f.Height},
			SpriteSourceSize: jsonRect{W: f.Width, H: f.Height},
			SourceSize:       jsonSize{W: f.Width, H: f.Height},
		}
		if i < len(s.Delays) {
			jf.Duration = int(s.Delays[i] / time.Millisecond)
		}
		m.Frames[s.Names[i]] = jf
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("anya: encode manifest: %w", err)
	}
	return data, nil
}

// LoadSheet parses a TexturePacker hash-format manifest for the page image
// img. Frames are ordered by name, so numbered exports replay in order.
func LoadSheet(jsonData []byte, img image.Image) (*Sheet, error) {
	var m jsonManifest
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("anya: failed to parse manifest: %w", err)
	}
	if len(m.Frames) == 0 {
		return nil, ErrEmptyPack
	}

	names := make([]string, 0, len(m.Frames))
	for name := range m.Frames {
		names = append(names, name)
	}
	sort.Strings(names)

	rgba := toRGBA(img)
	s := &Sheet{
		Canvas: &Canvas{pix: rgba, w: rgba.Bounds().Dx(), h: rgba.Bounds().Dy()},
		Names:  names,
		frames: make([]Frame, len(names)),
	}
	hasDelays := false
	delays := make([]time.Duration, len(names))
	for i, name := range names {
		jf := m.Frames[name]
		f := Frame{X: jf.Frame.X, Y: jf.Frame.Y, Width: jf.Frame.W, Height: jf.Frame.H}
		if i == 0 {
			s.CellWidth, s.CellHeight = f.Width, f.Height
		} else if f.Width != s.CellWidth || f.Height != s.CellHeight {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrFrameSizeMismatch, name, f.Width, f.Height, s.CellWidth, s.CellHeight)
		}
		if !f.Rect().In(rgba.Bounds()) {
			return nil, fmt.Errorf("anya: manifest frame %s lies outside the %dx%d image",
				name, s.Canvas.w, s.Canvas.h)
		}
		if jf.Duration > 0 {
			hasDelays = true
			delays[i] = time.Duration(jf.Duration) * time.Millisecond
		}
		s.frames[i] = f
	}
	if hasDelays {
		s.Delays = delays
	}
	return s, nil
}

// --- Registered atlases ---

// Atlas is a packed sheet uploaded to the GPU and registered by name.
type Atlas struct {
	Name    string
	Texture *Texture
	sheet   *Sheet
}

// Width returns the atlas width in pixels.
func (a *Atlas) Width() int { return a.Texture.Width() }

// Height returns the atlas height in pixels.
func (a *Atlas) Height() int { return a.Texture.Height() }

// CellWidth returns the width of one frame.
func (a *Atlas) CellWidth() int { return a.sheet.CellWidth }

// CellHeight returns the height of one frame.
func (a *Atlas) CellHeight() int { return a.sheet.CellHeight }

// Len returns the number of frames.
func (a *Atlas) Len() int { return a.sheet.Len() }

// Frames returns the frame table in source order.
func (a *Atlas) Frames() []Frame { return a.sheet.Frames() }

// Delays returns per-frame delays, or nil when the source had none.
func (a *Atlas) Delays() []time.Duration { return a.sheet.Delays }

// Region returns the frame packed from the named source.
func (a *Atlas) Region(name string) (Frame, bool) { return a.sheet.Frame(name) }

// MeanDelay returns the average frame delay, or zero without delays.
func (a *Atlas) MeanDelay() time.Duration {
	if len(a.sheet.Delays) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range a.sheet.Delays {
		total += d
	}
	return total / time.Duration(len(a.sheet.Delays))
}

// AddSheet uploads a sheet and registers it under name. Nothing is
// registered on failure.
func (r *Registry) AddSheet(name string, s *Sheet) (*Atlas, error) {
	if _, ok := r.textures[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTextureExists, name)
	}
	t := s.Canvas.Upload(name)
	if err := r.Add(name, t); err != nil {
		t.Dispose()
		return nil, err
	}
	a := &Atlas{Name: name, Texture: t, sheet: s}
	r.packs[name] = a
	r.logger.Info("packed atlas",
		"name", name,
		"frames", s.Len(),
		"width", t.w,
		"height", t.h,
		"size", humanize.Bytes(uint64(t.w)*uint64(t.h)*4))
	return a, nil
}

// CreatePack packs the images in dir and registers the atlas under packName.
func (r *Registry) CreatePack(packName, dir string) (*Atlas, error) {
	s, err := PackDir(dir)
	if err != nil {
		r.logger.Error("failed to create pack", "name", packName, "dir", dir, "error", err)
		return nil, err
	}
	return r.AddSheet(packName, s)
}

// CreatePackGIF packs the frames of the GIF at path under packName.
func (r *Registry) CreatePackGIF(packName, path string) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("anya: open gif: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := PackGIF(f)
	if err != nil {
		r.logger.Error("failed to create pack", "name", packName, "gif", path, "error", err)
		return nil, err
	}
	return r.AddSheet(packName, s)
}

// LoadPack registers a pre-built atlas from a page image and its manifest.
func (r *Registry) LoadPack(packName, imagePath, manifestPath string) (*Atlas, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("anya: read manifest: %w", err)
	}
	img, err := decodeFile(imagePath)
	if err != nil {
		return nil, err
	}
	s, err := LoadSheet(data, img)
	if err != nil {
		return nil, err
	}
	return r.AddSheet(packName, s)
}

// Pack returns the atlas registered under packName.
func (r *Registry) Pack(packName string) (*Atlas, bool) {
	a, ok := r.packs[packName]
	return a, ok
}

// PackWidth returns the width of the texture registered under packName, or
// -1 when there is none.
func (r *Registry) PackWidth(packName string) int {
	t, ok := r.textures[packName]
	if !ok {
		r.logger.Warn("failed to get pack", "name", packName)
		return -1
	}
	return t.w
}

// PackHeight returns the height of the texture registered under packName, or
// -1 when there is none.
func (r *Registry) PackHeight(packName string) int {
	t, ok := r.textures[packName]
	if !ok {
		r.logger.Warn("failed to get pack", "name", packName)
		return -1
	}
	return t.h
}
