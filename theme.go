package anya

import "sort"

// DefaultThemeName is the theme id buttons fall back to.
const DefaultThemeName = "default"

// Theme is the color set used to composite a button.
type Theme struct {
	Outline    Color
	Background Color
	Text       Color
}

// DefaultTheme is a light button with a dark grey outline and black text.
var DefaultTheme = Theme{
	Outline:    RGB(55, 55, 55),
	Background: RGB(255, 255, 255),
	Text:       RGB(0, 0, 0),
}

// ThemeTable maps theme ids to themes. Buttons keep an id rather than a copy
// of the colors, so edits to a theme show up on every button using it.
type ThemeTable struct {
	themes map[string]Theme
}

// NewThemeTable creates a table holding DefaultTheme under DefaultThemeName.
func NewThemeTable() *ThemeTable {
	return &ThemeTable{themes: map[string]Theme{DefaultThemeName: DefaultTheme}}
}

// Set stores th under name, replacing any previous theme.
func (t *ThemeTable) Set(name string, th Theme) {
	t.themes[name] = th
}

// Get returns the theme for name. Unknown names resolve to the default theme.
func (t *ThemeTable) Get(name string) Theme {
	if th, ok := t.themes[name]; ok {
		return th
	}
	if th, ok := t.themes[DefaultThemeName]; ok {
		return th
	}
	return DefaultTheme
}

// Has reports whether name is defined.
func (t *ThemeTable) Has(name string) bool {
	_, ok := t.themes[name]
	return ok
}

// Edit applies fn to the theme stored under name, creating it from the
// resolved theme if it does not exist yet.
func (t *ThemeTable) Edit(name string, fn func(*Theme)) {
	th := t.Get(name)
	fn(&th)
	t.themes[name] = th
}

// Replace swaps in a new set of themes. The default entry is kept unless the
// new set defines it.
func (t *ThemeTable) Replace(themes map[string]Theme) {
	next := make(map[string]Theme, len(themes)+1)
	next[DefaultThemeName] = t.Get(DefaultThemeName)
	for name, th := range themes {
		next[name] = th
	}
	t.themes = next
}

// Names returns the theme ids in sorted order.
func (t *ThemeTable) Names() []string {
	names := make([]string, 0, len(t.themes))
	for name := range t.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
