// Package platform selects the concrete capture and pointer backends
package platform

import (
	"runtime"
	"strings"

	apperrors "github.com/voskv/screentap/internal/errors"
	"github.com/voskv/screentap/internal/pointer"
	"github.com/voskv/screentap/internal/screen"
)

// Variant names a backend selection.
type Variant string

const (
	Auto    Variant = "auto"
	Darwin  Variant = "darwin"
	Linux   Variant = "linux"
	Windows Variant = "windows"
	Generic Variant = "generic"
)

// Backend bundles the capture source, pointer device, and display scale
// chosen once at startup.
type Backend struct {
	Variant Variant
	Source  screen.Source
	Device  pointer.Device
	Scale   float64
}

// Select resolves a platform name to a concrete backend. scale 0 means
// auto-detect (darwin only; other variants report device pixels 1:1).
// An unknown name is a configuration error; a variant this OS cannot
// provide is a resource error. Both are fatal before the run starts.
func Select(name string, scale float64) (*Backend, error) {
	variant, ok := parseVariant(name)
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeConfigInvalid, "unknown platform %q", name)
	}

	if variant == Auto {
		switch runtime.GOOS {
		case "darwin":
			variant = Darwin
		case "linux":
			variant = Linux
		case "windows":
			variant = Windows
		default:
			variant = Generic
		}
	}

	b := &Backend{Variant: variant, Device: pointer.NewRobotgoDevice(), Scale: scale}

	switch variant {
	case Darwin:
		if runtime.GOOS != "darwin" {
			return nil, apperrors.Newf(apperrors.CodeBackendUnavailable, "darwin backend requires macOS, running on %s", runtime.GOOS)
		}
		src, err := screen.NewNative()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeBackendUnavailable, "cannot initialize native capture")
		}
		b.Source = src
		if b.Scale <= 0 {
			b.Scale = pointer.DetectScale()
		}
	case Linux:
		if runtime.GOOS != "linux" {
			return nil, apperrors.Newf(apperrors.CodeBackendUnavailable, "linux backend requires Linux, running on %s", runtime.GOOS)
		}
		src, err := screen.NewNative()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeBackendUnavailable, "cannot initialize native capture")
		}
		b.Source = src
	case Windows:
		b.Source = screen.NewRobotgo()
	case Generic:
		b.Source = screen.NewScreenshot()
	}

	if b.Scale <= 0 {
		b.Scale = 1.0
	}
	return b, nil
}

func parseVariant(name string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, true
	case "darwin", "mac", "macos":
		return Darwin, true
	case "linux":
		return Linux, true
	case "windows", "win":
		return Windows, true
	case "generic":
		return Generic, true
	default:
		return "", false
	}
}
