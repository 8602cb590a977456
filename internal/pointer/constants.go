// Package pointer moves and clicks the system pointer along a human-like path
package pointer

import "time"

// Default motion profile
const (
	// Intermediate movement steps per click path
	DefaultStepsMin = 6
	DefaultStepsMax = 15

	// Delay between intermediate movements
	DefaultDelayMin = 10 * time.Millisecond
	DefaultDelayMax = 30 * time.Millisecond
)
