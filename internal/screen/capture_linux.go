//go:build linux

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

type linuxBackend struct{ tempDir string }

func (l *linuxBackend) captureRaw() (image.Image, error) {
	tmpFile := filepath.Join(l.tempDir, "frame.png")
	// Try gnome-screenshot first, fall back to scrot
	var cmd *exec.Cmd
	if _, err := exec.LookPath("gnome-screenshot"); err == nil {
		cmd = exec.Command("gnome-screenshot", "-f", tmpFile)
	} else if _, err := exec.LookPath("scrot"); err == nil {
		cmd = exec.Command("scrot", "-o", tmpFile)
	} else {
		return nil, fmt.Errorf("no screenshot tool found (install gnome-screenshot or scrot)")
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w (%s)", err, stderr.String())
	}
	img, err := decodeFile(tmpFile)
	os.Remove(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (l *linuxBackend) cleanup() {}

// NewNative creates the OS-native frame source. An unusable scratch
// directory is fatal; Close only ever removes a directory created here.
func NewNative() (Source, error) {
	tmpDir, err := os.MkdirTemp("", "screentap-frame-*")
	if err != nil {
		return nil, fmt.Errorf("create capture scratch dir: %w", err)
	}
	return newBase(&linuxBackend{tempDir: tmpDir}, tmpDir), nil
}
