package screen

import (
	"image"

	"github.com/vova616/screenshot"
)

type screenshotBackend struct{}

func (s *screenshotBackend) captureRaw() (image.Image, error) {
	return screenshot.CaptureScreen()
}

func (s *screenshotBackend) cleanup() {}

// NewScreenshot creates a pure-Go frame source used by the generic
// platform variant.
func NewScreenshot() Source {
	return newBase(&screenshotBackend{}, "")
}
