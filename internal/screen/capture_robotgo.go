package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
)

type robotgoBackend struct{}

func (r *robotgoBackend) captureRaw() (image.Image, error) {
	img := robotgo.CaptureImg()
	if img == nil {
		return nil, fmt.Errorf("robotgo capture returned no image")
	}
	return img, nil
}

func (r *robotgoBackend) cleanup() {}

// NewRobotgo creates an in-process frame source backed by robotgo.
func NewRobotgo() Source {
	return newBase(&robotgoBackend{}, "")
}
