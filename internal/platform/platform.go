// Package platform wraps the desktop services the widget reaches outside
// its window for: opening a URL in the browser, showing a native file
// picker and minimizing the window.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrUnsupported is returned when no helper exists for the current OS.
	ErrUnsupported = errors.New("not supported on this platform")
	// ErrCancelled is returned when the user dismisses the file picker.
	ErrCancelled = errors.New("cancelled")
)

// Window is the subset of window management the shell needs.
type Window interface {
	Minimize()
}

// EbitenWindow minimizes the ebiten window.
type EbitenWindow struct{}

// Minimize minimizes the window.
func (EbitenWindow) Minimize() {
	ebiten.MinimizeWindow()
}

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// FilePicker asks the user for a file.
type FilePicker interface {
	PickFile(ctx context.Context, title string, patterns []string) (string, error)
}

// Runner runs an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Desktop implements URLOpener and FilePicker with the OS helper programs:
// xdg-open and zenity or kdialog on Linux, open and osascript on macOS,
// rundll32 and PowerShell on Windows.
type Desktop struct {
	GOOS     string
	Run      Runner
	LookPath func(string) (string, error)
}

// NewDesktop returns a Desktop for the running OS.
func NewDesktop() *Desktop {
	return &Desktop{GOOS: runtime.GOOS, Run: ExecRunner, LookPath: exec.LookPath}
}

// OpenURL opens url with the OS default handler.
func (d *Desktop) OpenURL(ctx context.Context, url string) error {
	name, args, err := d.openCommand(url)
	if err != nil {
		return err
	}
	if _, err := d.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func (d *Desktop) openCommand(url string) (string, []string, error) {
	switch d.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	}
	return "", nil, fmt.Errorf("open url: %w", ErrUnsupported)
}

// PickFile shows a file dialog and returns the chosen path. patterns are
// glob patterns such as "*.png".
func (d *Desktop) PickFile(ctx context.Context, title string, patterns []string) (string, error) {
	name, args, err := d.pickCommand(title, patterns)
	if err != nil {
		return "", err
	}
	out, err := d.Run(ctx, name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// zenity, kdialog and osascript all exit non-zero on cancel.
			return "", ErrCancelled
		}
		return "", fmt.Errorf("file picker: %w", err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}

func (d *Desktop) pickCommand(title string, patterns []string) (string, []string, error) {
	switch d.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		if d.has("zenity") {
			args := []string{"--file-selection", "--title=" + title}
			if len(patterns) > 0 {
				args = append(args, "--file-filter="+strings.Join(patterns, " "))
			}
			return "zenity", args, nil
		}
		if d.has("kdialog") {
			return "kdialog", []string{"--title", title, "--getopenfilename", ".", strings.Join(patterns, " ")}, nil
		}
		return "", nil, fmt.Errorf("file picker: need zenity or kdialog: %w", ErrUnsupported)
	case "darwin":
		script := fmt.Sprintf("POSIX path of (choose file with prompt %q)", title)
		return "osascript", []string{"-e", script}, nil
	case "windows":
		filter := "All files (*.*)|*.*"
		if len(patterns) > 0 {
			p := strings.Join(patterns, ";")
			filter = p + "|" + p
		}
		script := "Add-Type -AssemblyName System.Windows.Forms;" +
			"$d = New-Object System.Windows.Forms.OpenFileDialog;" +
			"$d.Title = '" + strings.ReplaceAll(title, "'", "''") + "';" +
			"$d.Filter = '" + strings.ReplaceAll(filter, "'", "''") + "';" +
			"if ($d.ShowDialog() -eq 'OK') { $d.FileName }"
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	}
	return "", nil, fmt.Errorf("file picker: %w", ErrUnsupported)
}

func (d *Desktop) has(name string) bool {
	if d.LookPath == nil {
		return false
	}
	_, err := d.LookPath(name)
	return err == nil
}
