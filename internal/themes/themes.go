package themes

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/anya"
)

// EmbeddedThemes is the bundled theme file.
//
//go:embed themes.yaml
var EmbeddedThemes []byte

// ErrNoThemes is returned for a theme file that defines nothing.
var ErrNoThemes = errors.New("no themes defined")

// ThemeSpec is one theme as written in YAML.
type ThemeSpec struct {
	Outline    string `yaml:"outline"`
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
}

// File is the on-disk theme file layout.
type File struct {
	Themes map[string]ThemeSpec `yaml:"themes"`
}

// Parse decodes YAML theme data.
func Parse(data []byte) (map[string]anya.Theme, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}
	if len(f.Themes) == 0 {
		return nil, ErrNoThemes
	}

	out := make(map[string]anya.Theme, len(f.Themes))
	for name, spec := range f.Themes {
		th, err := spec.Theme()
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		out[name] = th
	}
	return out, nil
}

// Load reads the theme file at path. An empty path loads the embedded themes.
func Load(path string) (map[string]anya.Theme, error) {
	if path == "" {
		return Parse(EmbeddedThemes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Theme converts the hex colors of s.
func (s ThemeSpec) Theme() (anya.Theme, error) {
	outline, err := ParseHex(s.Outline)
	if err != nil {
		return anya.Theme{}, fmt.Errorf("outline: %w", err)
	}
	bg, err := ParseHex(s.Background)
	if err != nil {
		return anya.Theme{}, fmt.Errorf("background: %w", err)
	}
	text, err := ParseHex(s.Text)
	if err != nil {
		return anya.Theme{}, fmt.Errorf("text: %w", err)
	}
	return anya.Theme{Outline: outline, Background: bg, Text: text}, nil
}

// Spec converts th back to its YAML form.
func Spec(th anya.Theme) ThemeSpec {
	return ThemeSpec{
		Outline:    Hex(th.Outline),
		Background: Hex(th.Background),
		Text:       Hex(th.Text),
	}
}

// Encode writes themes as YAML.
func Encode(themes map[string]anya.Theme) ([]byte, error) {
	f := File{Themes: make(map[string]ThemeSpec, len(themes))}
	for name, th := range themes {
		f.Themes[name] = Spec(th)
	}
	return yaml.Marshal(&f)
}

// Names returns the theme names in sorted order.
func Names(themes map[string]anya.Theme) []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHex parses a #rrggbb color into an opaque anya.Color.
func ParseHex(s string) (anya.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return anya.Color{}, err
	}
	return FromColorful(c), nil
}

// Hex formats the RGB channels of c as #rrggbb.
func Hex(c anya.Color) string {
	return ToColorful(c).Clamped().Hex()
}

// FromColorful converts a go-colorful color to an opaque anya.Color.
func FromColorful(c colorful.Color) anya.Color {
	c = c.Clamped()
	return anya.Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// ToColorful drops alpha and returns the RGB channels of c.
func ToColorful(c anya.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
