//go:build darwin

package screen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"os/exec"
	"path/filepath"
)

type darwinBackend struct{ tempDir string }

func (d *darwinBackend) captureRaw() (image.Image, error) {
	tmpFile := filepath.Join(d.tempDir, "frame.png")
	// -x: no sound, -t png: lossless for matching, -m: main display only
	cmd := exec.Command("screencapture", "-x", "-t", "png", "-m", tmpFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("screencapture failed: %w (%s)", err, stderr.String())
	}
	img, err := decodeFile(tmpFile)
	os.Remove(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (d *darwinBackend) cleanup() {}

// NewNative creates the OS-native frame source. An unusable scratch
// directory is fatal; Close only ever removes a directory created here.
func NewNative() (Source, error) {
	tmpDir, err := os.MkdirTemp("", "screentap-frame-*")
	if err != nil {
		return nil, fmt.Errorf("create capture scratch dir: %w", err)
	}
	return newBase(&darwinBackend{tempDir: tmpDir}, tmpDir), nil
}
