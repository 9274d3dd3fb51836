package anya

import (
	"errors"
	"fmt"
)

// NoScene is the index reported before the first successful Set, and by
// Find for names that were never created.
const NoScene = -1

var (
	// ErrDuplicateScene is returned by Create for a name already in use.
	ErrDuplicateScene = errors.New("anya: duplicate scene")
	// ErrUnknownScene is returned by Set for a name that was never created.
	ErrUnknownScene = errors.New("anya: unknown scene")
	// ErrEmptySceneName is returned by Create for the empty name.
	ErrEmptySceneName = errors.New("anya: empty scene name")
)

// SceneRegistry is the ordered list of mutually exclusive UI layers and the
// single source of truth for which one is active. Indices are positions in
// creation order and never change, so callers may compare
// Current() == Find("Settings") instead of comparing names.
type SceneRegistry struct {
	names   []string
	current int

	// OnChange, if set, is called after Set switches to a different layer.
	// from is "" on the first switch.
	OnChange func(from, to string)
}

// NewSceneRegistry creates a registry with no layers and none selected.
func NewSceneRegistry() *SceneRegistry {
	return &SceneRegistry{current: NoScene}
}

// Create appends a layer.
func (s *SceneRegistry) Create(name string) error {
	if name == "" {
		return ErrEmptySceneName
	}
	if s.Find(name) != NoScene {
		return fmt.Errorf("%w: %q", ErrDuplicateScene, name)
	}
	s.names = append(s.names, name)
	return nil
}

// Set makes name the active layer. An unknown name leaves the current layer
// unchanged.
func (s *SceneRegistry) Set(name string) error {
	idx := s.Find(name)
	if idx == NoScene {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if idx == s.current {
		return nil
	}
	from := s.CurrentName()
	s.current = idx
	if s.OnChange != nil {
		s.OnChange(from, name)
	}
	return nil
}

// Current returns the index of the active layer, or NoScene.
func (s *SceneRegistry) Current() int {
	return s.current
}

// CurrentName returns the active layer's name, or "" before the first Set.
func (s *SceneRegistry) CurrentName() string {
	if s.current == NoScene {
		return ""
	}
	return s.names[s.current]
}

// Is reports whether name is the active layer.
func (s *SceneRegistry) Is(name string) bool {
	return s.current != NoScene && s.current == s.Find(name)
}

// Find returns the index of name, or NoScene.
func (s *SceneRegistry) Find(name string) int {
	for i, n := range s.names {
		if n == name {
			return i
		}
	}
	return NoScene
}

// Names returns the layer names in creation order.
func (s *SceneRegistry) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of layers.
func (s *SceneRegistry) Len() int {
	return len(s.names)
}
