package vision

import (
	"image"
	"testing"
)

func word(text string, conf int, x, y int) Word {
	return Word{Text: text, Conf: conf, Box: image.Rect(x, y, x+40, y+12)}
}

func TestFilterTextConfidenceFloor(t *testing.T) {
	words := []Word{
		word("Start", 59, 0, 0),
		word("Start", 60, 0, 20),
		word("Start", 95, 0, 40),
	}

	got := FilterText(words, []string{"start"}, 60)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	for _, c := range got {
		if c.Score < 60 {
			t.Errorf("candidate below confidence floor: %f", c.Score)
		}
	}
}

func TestFilterTextKeywordSubstring(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     bool
	}{
		{"exact", "Confirm", []string{"Confirm"}, true},
		{"case insensitive", "CONFIRM", []string{"confirm"}, true},
		{"substring", "Confirmation", []string{"confirm"}, true},
		{"keyword uppercase", "confirm", []string{"CONFIRM"}, true},
		{"no match", "Cancel", []string{"confirm"}, false},
		{"second keyword", "Retry", []string{"confirm", "retry"}, true},
		{"empty keyword ignored", "Cancel", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterText([]Word{word(tt.text, 90, 0, 0)}, tt.keywords, 60)
			if (len(got) == 1) != tt.want {
				t.Errorf("FilterText(%q, %v) matched=%v, want %v", tt.text, tt.keywords, len(got) == 1, tt.want)
			}
		})
	}
}

func TestFilterTextDropsEmptyText(t *testing.T) {
	words := []Word{
		word("", 99, 0, 0),
		word("Start", 99, 0, 20),
	}

	got := FilterText(words, []string{"start", ""}, 60)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Text != "Start" {
		t.Errorf("Text = %q, want %q", got[0].Text, "Start")
	}
}

func TestFilterTextPreservesOrder(t *testing.T) {
	words := []Word{
		word("Start here", 80, 0, 0),
		word("Start now", 70, 0, 20),
		word("Restart", 90, 0, 40),
	}

	got := FilterText(words, []string{"start"}, 60)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Box.Min.Y < got[i-1].Box.Min.Y {
			t.Error("emission order not preserved")
		}
	}
}
