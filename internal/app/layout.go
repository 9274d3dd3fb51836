package app

import (
	"github.com/phanxgames/anya"
)

// Layer names, in creation order.
const (
	LayerMain        = "Main"
	LayerSettings    = "Settings"
	LayerThemes      = "Settings-Themes"
	LayerThemeEditor = "Theme-Creator"
)

var layers = []string{LayerMain, LayerSettings, LayerThemes, LayerThemeEditor}

// Commands carried in Button.Target for ActionCommand buttons.
const (
	cmdToggleDate       = "toggle-date"
	cmdToggleMinimal    = "toggle-minimal"
	cmdToggleBackground = "toggle-background"
	cmdOpenFile         = "open-file"
	cmdPickColor        = "pick-color"
	cmdPickFont         = "pick-font"
	cmdEditMenu         = "edit-menu"
	cmdEditButton       = "edit-button"
	cmdEditOutline      = "edit-outline"
	cmdEditText         = "edit-text"
)

// buttonSpec is one row of the button table.
type buttonSpec struct {
	text       string
	layer      string
	x, y, w, h float64
	action     anya.Action
	target     string
	collapsed  bool // hidden until the Background button expands it
}

// buttonTable lays out every button for a 148x89 window.
var buttonTable = []buttonSpec{
	{"+", LayerMain, -2, -15, 25, 50, anya.ActionNavigate, LayerSettings, false},

	{"x", LayerSettings, 0, -5, 20, 28, anya.ActionNavigate, LayerMain, false},
	{"_", LayerSettings, 128, -5, 20, 28, anya.ActionMinimize, "", false},
	{"Themes", LayerSettings, 35, 6, 80, 24, anya.ActionNavigate, LayerThemes, false},
	{"Date", LayerSettings, 35, 34, 38, 20, anya.ActionCommand, cmdToggleDate, false},
	{"GitHub", LayerSettings, 77, 34, 38, 20, anya.ActionOpenURL, "", false},
	{"Quit", LayerSettings, 45, 58, 55, 26, anya.ActionQuit, "", false},

	{"<-", LayerThemes, 0, -5, 20, 28, anya.ActionNavigate, LayerSettings, false},
	{"Minimal", LayerThemes, 24, 4, 60, 20, anya.ActionCommand, cmdToggleMinimal, false},
	{"Font", LayerThemes, 88, 4, 56, 20, anya.ActionCommand, cmdPickFont, false},
	{"Background", LayerThemes, 24, 28, 60, 20, anya.ActionCommand, cmdToggleBackground, false},
	{"Open File", LayerThemes, 88, 28, 56, 20, anya.ActionCommand, cmdOpenFile, true},
	{"Color", LayerThemes, 88, 52, 56, 20, anya.ActionCommand, cmdPickColor, true},
	{"Theme", LayerThemes, 24, 52, 60, 20, anya.ActionNavigate, LayerThemeEditor, false},

	{"<-", LayerThemeEditor, 0, -5, 20, 28, anya.ActionNavigate, LayerThemes, false},
	{"Menu", LayerThemeEditor, 2, 26, 40, 14, anya.ActionCommand, cmdEditMenu, false},
	{"Button", LayerThemeEditor, 2, 42, 40, 14, anya.ActionCommand, cmdEditButton, false},
	{"Outline", LayerThemeEditor, 2, 58, 40, 14, anya.ActionCommand, cmdEditOutline, false},
	{"Text", LayerThemeEditor, 2, 74, 40, 13, anya.ActionCommand, cmdEditText, false},
}

// Picker placement. The modal picker covers most of the window; the editor
// picker sits right of the target buttons.
var (
	modalPickerBounds  = anya.Rect{X: 8, Y: 6, Width: 132, Height: 77}
	editorPickerBounds = anya.Rect{X: 46, Y: 4, Width: 100, Height: 81}
)

// clockPosition returns where the clock text is drawn for a w x h window.
func clockPosition(w, h int) (float64, float64) {
	return float64(w / 8), float64(int(float64(h) / 1.6))
}

// buildLayers creates every layer in order.
func buildLayers(scenes *anya.SceneRegistry) error {
	for _, name := range layers {
		if err := scenes.Create(name); err != nil {
			return err
		}
	}
	return nil
}

// buildButtons creates the button table in ui with the given theme and
// returns the collapsible buttons.
func buildButtons(ui *anya.UI, theme, githubURL string) []*anya.Button {
	var collapsible []*anya.Button
	for _, s := range buttonTable {
		target := s.target
		if s.action == anya.ActionOpenURL {
			target = githubURL
		}
		b := ui.CreateButton(anya.ButtonOptions{
			Text:   s.text,
			Theme:  theme,
			Layer:  s.layer,
			X:      s.x,
			Y:      s.y,
			Width:  s.w,
			Height: s.h,
			Action: s.action,
			Target: target,
		})
		if s.collapsed {
			collapsible = append(collapsible, b)
		}
	}
	return collapsible
}
