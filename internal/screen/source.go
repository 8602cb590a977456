// Package screen provides platform-agnostic full-screen frame capture
package screen

import (
	"image"
	"os"

	"github.com/corona10/goimagehash"
)

// Source captures full-screen frames with change detection. The frame is
// always fresh; changed is false when the screen is perceptually identical
// to the previous capture.
type Source interface {
	Capture() (img image.Image, changed bool, err error)
	Close()
}

// backend implements platform-specific raw capture
type backend interface {
	captureRaw() (image.Image, error)
	cleanup()
}

// baseSource provides shared perceptual-hash change detection
type baseSource struct {
	backend
	lastHash *goimagehash.ImageHash
	tempDir  string
}

func newBase(b backend, tempDir string) *baseSource {
	return &baseSource{backend: b, tempDir: tempDir}
}

func (s *baseSource) Capture() (image.Image, bool, error) {
	img, err := s.captureRaw()
	if err != nil {
		return nil, false, err
	}

	changed := true
	if hash, err := goimagehash.PerceptionHash(img); err == nil {
		if s.lastHash != nil {
			if dist, err := s.lastHash.Distance(hash); err == nil && dist <= MaxHashDistance {
				changed = false
			}
		}
		s.lastHash = hash
	}
	return img, changed, nil
}

// Close releases the backend. tempDir, when set, is always a directory
// this package created; nothing shared is ever removed.
func (s *baseSource) Close() {
	s.cleanup()
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
