package ocr

import (
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const sampleTSV = `level	page_num	block_num	par_num	line_num	word_num	left	top	width	height	conf	text
1	1	0	0	0	0	0	0	800	600	-1
4	1	1	1	1	0	10	10	200	30	-1
5	1	1	1	1	1	10	10	60	20	96	Start
5	1	1	1	1	2	80	10	90	20	88.724503	Confirm
5	1	1	1	1	3	180	12	40	18	-1
5	1	1	1	2	1	10	40	70	22	42	Cancel
`

func TestParseTSV(t *testing.T) {
	words := parseTSV(sampleTSV)
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}

	if words[0].Text != "Start" || words[0].Conf != 96 {
		t.Errorf("word 0 = %+v, want Start/96", words[0])
	}
	if want := image.Rect(10, 10, 70, 30); words[0].Box != want {
		t.Errorf("word 0 box = %v, want %v", words[0].Box, want)
	}

	// Fractional confidences truncate to integers.
	if words[1].Text != "Confirm" || words[1].Conf != 88 {
		t.Errorf("word 1 = %+v, want Confirm/88", words[1])
	}

	if words[2].Text != "Cancel" || words[2].Conf != 42 {
		t.Errorf("word 2 = %+v, want Cancel/42", words[2])
	}
}

func TestParseTSVSkipsNonWordRows(t *testing.T) {
	for _, w := range parseTSV(sampleTSV) {
		if w.Conf < 0 {
			t.Errorf("negative confidence row leaked through: %+v", w)
		}
	}
}

func TestParseTSVMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only", "level\tpage_num\n"},
		{"short row", "5\t1\t1\n"},
		{"bad numbers", "header\n5\t1\t1\t1\t1\t1\tx\ty\tw\th\t90\ttext\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if words := parseTSV(tt.in); len(words) != 0 {
				t.Errorf("expected no words, got %d", len(words))
			}
		})
	}
}

func TestCloseRemovesOnlyOwnScratchDir(t *testing.T) {
	parent := t.TempDir()
	scratch := filepath.Join(parent, "scratch")
	if err := os.Mkdir(scratch, 0o755); err != nil {
		t.Fatalf("mkdir scratch: %v", err)
	}
	bystander := filepath.Join(parent, "unrelated.txt")
	if err := os.WriteFile(bystander, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write bystander: %v", err)
	}

	tess := &Tesseract{tempDir: scratch}
	tess.Close()

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("scratch dir should be removed")
	}
	if _, err := os.Stat(bystander); err != nil {
		t.Errorf("file next to the scratch dir must survive Close: %v", err)
	}
}

func TestNewFailsWithoutScratchDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR has no effect on windows")
	}
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	tess, err := New()
	if err == nil {
		tess.Close()
		t.Fatal("expected a fatal error when no scratch dir can be created")
	}
}

func TestParseTSVTrimsText(t *testing.T) {
	in := "header\n5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t90\t  spaced \n"
	words := parseTSV(in)
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0].Text != "spaced" {
		t.Errorf("Text = %q, want trimmed", words[0].Text)
	}
	if strings.Contains(words[0].Text, " ") {
		t.Error("text should not retain surrounding whitespace")
	}
}
