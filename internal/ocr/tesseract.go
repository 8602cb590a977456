// Package ocr extracts word-level text regions using the tesseract binary
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/voskv/screentap/internal/errors"
	"github.com/voskv/screentap/internal/vision"
)

// Tesseract shells out to the tesseract CLI in TSV mode and parses its
// word table (level 5 rows: box, confidence, text).
type Tesseract struct {
	binary  string
	tempDir string
}

// New locates the tesseract binary and prepares a scratch directory.
// A missing binary or unusable scratch directory is a fatal resource
// error; the run must not start.
func New() (*Tesseract, error) {
	bin, err := exec.LookPath("tesseract")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeBackendUnavailable, "tesseract binary not found in PATH")
	}
	tmpDir, err := os.MkdirTemp("", "screentap-ocr-*")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeBackendUnavailable, "cannot create recognizer scratch dir")
	}
	return &Tesseract{binary: bin, tempDir: tmpDir}, nil
}

// Recognize runs tesseract over img and returns its words in emission
// order. Failures inside the polling loop are transient; callers log and
// continue.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, lang string) ([]vision.Word, error) {
	tmpFile := filepath.Join(t.tempDir, "frame.png")
	f, err := os.Create(tmpFile)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	defer os.Remove(tmpFile)

	// --psm 6: assume a single uniform block of text.
	cmd := exec.CommandContext(ctx, t.binary, tmpFile, "stdout", "-l", lang, "--psm", "6", "tsv")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		slog.Debug("tesseract failed", "error", err, "stderr", stderr.String())
		return nil, err
	}

	return parseTSV(stdout.String()), nil
}

// Close removes the scratch directory. tempDir is always a directory New
// created; nothing shared is ever removed.
func (t *Tesseract) Close() {
	if t.tempDir != "" {
		os.RemoveAll(t.tempDir)
	}
}

// parseTSV extracts word rows from tesseract's TSV output. Column layout:
// level page block par line word left top width height conf text
func parseTSV(out string) []vision.Word {
	var words []vision.Word
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 || line == "" {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 12 {
			continue
		}
		if cols[0] != "5" {
			continue // not a word row
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		left, err1 := strconv.Atoi(cols[6])
		top, err2 := strconv.Atoi(cols[7])
		width, err3 := strconv.Atoi(cols[8])
		height, err4 := strconv.Atoi(cols[9])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		text := strings.TrimSpace(cols[11])
		words = append(words, vision.Word{
			Text: text,
			Conf: int(conf),
			Box:  image.Rect(left, top, left+width, top+height),
		})
	}
	return words
}
