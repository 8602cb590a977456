package vision

import (
	"image"
	"strings"
)

// Word is one recognized text region as emitted by a Recognizer, in
// scanning order (top-to-bottom, left-to-right).
type Word struct {
	Text string
	Conf int
	Box  image.Rectangle
}

// FilterText keeps the words whose confidence meets minConf and whose text
// contains any keyword as a case-insensitive substring. Empty text and
// below-floor detections are discarded before keyword filtering. Emission
// order is preserved; no re-sorting.
func FilterText(words []Word, keywords []string, minConf int) []Candidate {
	var out []Candidate
	for _, w := range words {
		if w.Text == "" || w.Conf < minConf {
			continue
		}
		lower := strings.ToLower(w.Text)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, Candidate{Box: w.Box, Score: float64(w.Conf), Text: w.Text})
				break
			}
		}
	}
	return out
}
