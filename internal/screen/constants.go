// Package screen provides platform-agnostic full-screen frame capture
package screen

// Capture constants
const (
	// Max perceptual-hash Hamming distance to consider two frames identical
	MaxHashDistance = 3
)
