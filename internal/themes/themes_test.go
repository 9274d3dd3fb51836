package themes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/anya"
)

const customYAML = `
themes:
  night:
    outline: "#101010"
    background: "#202020"
    text: "#f0f0f0"
`

func TestLoad_Embedded(t *testing.T) {
	themes, err := Load("")
	require.NoError(t, err)

	assert.Contains(t, themes, "default")
	assert.Contains(t, themes, "dark")
	assert.Equal(t, Spec(anya.DefaultTheme), Spec(themes["default"]), "embedded default should match the core default")
}

func TestParse_Custom(t *testing.T) {
	themes, err := Parse([]byte(customYAML))
	require.NoError(t, err)
	require.Len(t, themes, 1)

	night := themes["night"]
	assert.InDelta(t, 0x20/255.0, night.Background.R, 1e-9)
	assert.InDelta(t, 0xf0/255.0, night.Text.G, 1e-9)
	assert.Equal(t, 1.0, night.Outline.A)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":         "themes: {}\n",
		"bad hex":       "themes:\n  x:\n    outline: \"red\"\n    background: \"#000000\"\n    text: \"#000000\"\n",
		"unknown field": "themes:\n  x:\n    border: \"#000000\"\n",
		"not yaml":      "themes: [\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyIsErrNoThemes(t *testing.T) {
	_, err := Parse([]byte("themes: {}\n"))
	assert.ErrorIs(t, err, ErrNoThemes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#0a0a19")
	require.NoError(t, err)
	assert.Equal(t, "#0a0a19", Hex(c))
}

func TestEncodeRoundTrip(t *testing.T) {
	in, err := Load("")
	require.NoError(t, err)

	data, err := Encode(in)
	require.NoError(t, err)
	out, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, Names(in), Names(out))
	for name := range in {
		assert.Equal(t, Spec(in[name]), Spec(out[name]), name)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names(map[string]anya.Theme{"b": {}, "a": {}, "c": {}})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	require.NoError(t, os.WriteFile(path, EmbeddedThemes, 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(customYAML), 0644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-w.Updates():
			if r.Err != nil {
				// A write may be observed before it completes; wait for the next one.
				continue
			}
			if _, ok := r.Themes["night"]; ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for theme reload")
		}
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
