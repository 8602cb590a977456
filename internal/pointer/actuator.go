package pointer

import (
	"image"
	"math/rand/v2"
	"time"
)

// Profile bounds the randomized motion synthesis.
type Profile struct {
	StepsMin int
	StepsMax int
	DelayMin time.Duration
	DelayMax time.Duration
}

// DefaultProfile returns the standard motion profile.
func DefaultProfile() Profile {
	return Profile{
		StepsMin: DefaultStepsMin,
		StepsMax: DefaultStepsMax,
		DelayMin: DefaultDelayMin,
		DelayMax: DefaultDelayMax,
	}
}

// Actuator turns a target rectangle into a randomized, human-like click.
// The display scale is immutable for the actuator's lifetime: matched
// rectangles are in captured device pixels, pointer coordinates are
// device pixels divided by scale.
type Actuator struct {
	dev     Device
	scale   float64
	profile Profile
}

// New creates an actuator with the default motion profile.
func New(dev Device, scale float64) *Actuator {
	return NewWithProfile(dev, scale, DefaultProfile())
}

// NewWithProfile creates an actuator with an explicit motion profile.
func NewWithProfile(dev Device, scale float64, p Profile) *Actuator {
	if scale <= 0 {
		scale = 1.0
	}
	if p.StepsMin < 1 {
		p.StepsMin = 1
	}
	if p.StepsMax < p.StepsMin {
		p.StepsMax = p.StepsMin
	}
	return &Actuator{dev: dev, scale: scale, profile: p}
}

// ClickInRect picks a uniformly random point inside rect shrunk by padding
// on all sides, moves the pointer there along an interpolated jittered
// path, performs a press-release click, and returns the clicked point in
// pointer coordinates. A rect without positive area returns its origin
// unchanged and performs no motion or click.
func (a *Actuator) ClickInRect(rect image.Rectangle, padding int) image.Point {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return rect.Min
	}

	innerW := max(w-padding*2, 1)
	innerH := max(h-padding*2, 1)
	rx := rect.Min.X + padding + rand.IntN(innerW)
	ry := rect.Min.Y + padding + rand.IntN(innerH)

	targetX := float64(rx) / a.scale
	targetY := float64(ry) / a.scale

	a.moveHumanized(targetX, targetY)
	a.dev.Click(targetX, targetY)

	return image.Pt(int(targetX), int(targetY))
}

// moveHumanized interpolates from the current pointer position to the
// target over a randomized number of steps with ±1 unit jitter and a
// short randomized delay per step.
func (a *Actuator) moveHumanized(targetX, targetY float64) {
	steps := a.profile.StepsMin
	if a.profile.StepsMax > a.profile.StepsMin {
		steps += rand.IntN(a.profile.StepsMax - a.profile.StepsMin + 1)
	}

	sx, sy := a.dev.Position()
	startX, startY := float64(sx), float64(sy)

	for i := 0; i < steps; i++ {
		ratio := float64(i+1) / float64(steps)
		nx := startX + (targetX-startX)*ratio + jitter()
		ny := startY + (targetY-startY)*ratio + jitter()
		a.dev.MoveTo(nx, ny)
		time.Sleep(a.stepDelay())
	}
}

func (a *Actuator) stepDelay() time.Duration {
	if a.profile.DelayMax <= a.profile.DelayMin {
		return a.profile.DelayMin
	}
	return a.profile.DelayMin + rand.N(a.profile.DelayMax-a.profile.DelayMin)
}

func jitter() float64 {
	return rand.Float64()*2 - 1
}
