// Package anya is the rendering and UI core of a small always-on desktop
// widget built on [Ebitengine].
//
// It provides a reference-counted texture registry, an atlas packer that
// composes a directory of equally sized frames (or an animated GIF) into a
// horizontal strip, a frame-table animation engine, a registry of mutually
// exclusive UI layers, and themed buttons with a hover fade.
//
// # Quick start
//
//	reg := anya.NewRegistry(slog.Default())
//	pack, err := reg.CreatePack("clock", "assets/clock")
//	if err != nil {
//		return err
//	}
//
//	var anim anya.Animation
//	anim.SetFrames(pack.Frames())
//
//	// per tick, dt in milliseconds:
//	anim.Update(100, dt)
//	anim.Draw(pack.Texture, screen, 0, 0, 1)
//
// # Layers and buttons
//
// A [SceneRegistry] names the layers and tracks the active one. Every
// [Button] carries the name of the layer it belongs to. The shell feeds
// pointer events to [UI.Update] for hover fades and to [UI.Dispatch] with the
// active layer's name for clicks:
//
//	scenes := anya.NewSceneRegistry()
//	scenes.Create("Main")
//	scenes.Create("Settings")
//	scenes.Set("Main")
//
//	ui := anya.NewUI(nil)
//	ui.CreateButton(anya.ButtonOptions{
//		Text: "+", Layer: "Main", X: -2, Y: -15, Width: 25, Height: 50,
//		Action: anya.ActionNavigate, Target: "Settings",
//	})
//	ui.SetEnabledForLayer(scenes.CurrentName())
//
// Time is measured in milliseconds throughout: animation speeds, hover fade
// rate and dt all share that unit.
//
// [Ebitengine]: https://ebitengine.org
package anya
