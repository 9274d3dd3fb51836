// Package audio plays the UI click sound. It decodes WAV, OGG and MP3 files
// with beep, caches the decoded samples and opens the speaker lazily on the
// first successful load.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for files that are not WAV, OGG or MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Player plays short sounds.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate
	cache       map[string]*beep.Buffer
}

// NewPlayer creates a player at full volume.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(volume, 0), 1)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play plays the sound at path. An empty path is a no-op.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}
	buf, err := p.load(expandHome(path))
	if err != nil {
		p.logger.Warn("failed to load sound", "path", path, "error", err)
		return err
	}
	p.play(buf)
	return nil
}

// Preload decodes and caches the sound at path without playing it.
func (p *Player) Preload(path string) error {
	if path == "" {
		return nil
	}
	_, err := p.load(expandHome(path))
	return err
}

func (p *Player) load(path string) (*beep.Buffer, error) {
	p.mu.Lock()
	buf, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return buf, nil
	}

	buf, err := p.decode(path)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[path] = buf
	p.mu.Unlock()
	p.logger.Debug("loaded sound", "path", path)
	return buf, nil
}

// decode reads the whole file at path into a buffer.
func (p *Player) decode(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch ext {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".ogg":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer func() { _ = f.Close() }()

	streamer, format, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureSpeaker(format.SampleRate); err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

// ensureSpeaker opens the speaker at the first decoded sample rate.
func (p *Player) ensureSpeaker(sr beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.sampleRate = sr
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sr)
	return nil
}

func (p *Player) play(buf *beep.Buffer) {
	p.mu.Lock()
	volume := p.volume
	sr := p.sampleRate
	p.mu.Unlock()

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != sr {
		s = beep.Resample(4, buf.Format().SampleRate, sr, s)
	}
	if volume < 1 {
		s = &effects.Volume{
			Streamer: s,
			Base:     2,
			Volume:   volumeExponent(volume),
			Silent:   volume == 0,
		}
	}
	speaker.Play(s)
}

// Close stops playback and drops cached sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	clear(p.cache)
}

// volumeExponent maps a linear volume to the base-2 exponent effects.Volume
// expects: 0.5 is -1, 0.25 is -2.
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
