package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/themes"
)

func init() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFrame(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestWriteAtlas_Dir(t *testing.T) {
	src := t.TempDir()
	writeFrame(t, filepath.Join(src, "b.png"), color.RGBA{0, 255, 0, 255})
	writeFrame(t, filepath.Join(src, "a.png"), color.RGBA{255, 0, 0, 255})

	out := filepath.Join(t.TempDir(), "out", "bg.png")
	res, err := writeAtlas(src, out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Frames)
	assert.Equal(t, 8, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, filepath.Join(filepath.Dir(out), "bg.json"), res.ManifestPath)
	assert.Positive(t, res.Bytes)

	data, err := os.ReadFile(res.ManifestPath)
	require.NoError(t, err)
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	sheet, err := anya.LoadSheet(data, img)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, sheet.Names)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(0, 0)))
}

func TestWriteAtlas_RejectsNonGIFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	writeFrame(t, path, color.RGBA{A: 255})
	_, err := writeAtlas(path, filepath.Join(t.TempDir(), "atlas.png"))
	assert.Error(t, err)
}

func TestWriteAtlas_MissingSource(t *testing.T) {
	_, err := writeAtlas(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "atlas.png"))
	assert.Error(t, err)
}

func TestPrintThemes_MarksActive(t *testing.T) {
	table, err := themes.Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	printThemes(&buf, table, "dark")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(table))
	for _, line := range lines {
		if strings.Contains(line, "dark") {
			assert.True(t, strings.HasPrefix(line, "*"), line)
		} else {
			assert.True(t, strings.HasPrefix(line, " "), line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
	assert.Equal(t, slog.LevelWarn, parseLevel("bogus"))
}
