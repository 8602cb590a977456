// Package pointer moves and clicks the system pointer along a human-like path
package pointer

import (
	"github.com/go-vgo/robotgo"
)

// Device injects low-level pointer operations. Coordinates are in pointer
// units (logical pixels).
type Device interface {
	Position() (x, y int)
	MoveTo(x, y float64)
	Click(x, y float64)
}

type robotgoDevice struct{}

func (robotgoDevice) Position() (int, int) { return robotgo.Location() }

func (robotgoDevice) MoveTo(x, y float64) { robotgo.Move(int(x), int(y)) }

func (robotgoDevice) Click(x, y float64) {
	robotgo.Move(int(x), int(y))
	robotgo.Click("left", false)
}

// NewRobotgoDevice creates the robotgo-backed pointer device.
func NewRobotgoDevice() Device { return robotgoDevice{} }

// DetectScale queries the main display's scale factor.
func DetectScale() float64 {
	if s := robotgo.ScaleF(); s > 0 {
		return s
	}
	return 1.0
}
