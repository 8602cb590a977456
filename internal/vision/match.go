package vision

import (
	"context"
	"image"
	"image/draw"

	"github.com/voskv/screentap/internal/step"
)

// Recognizer extracts ordered words from an image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, lang string) ([]Word, error)
}

// Matcher evaluates a step against a frame.
type Matcher struct {
	ocr Recognizer
}

// NewMatcher creates a matcher. ocr may be nil when no step uses a
// text-bearing mode.
func NewMatcher(ocr Recognizer) *Matcher {
	return &Matcher{ocr: ocr}
}

// Evaluate returns the step's match candidates in scan order, or an empty
// list when nothing matched. An error only reports a recognizer failure;
// callers treat it as a transient non-match.
func (m *Matcher) Evaluate(ctx context.Context, frame image.Image, st step.Step) ([]Candidate, error) {
	switch st.Mode {
	case step.ModeText:
		words, err := m.ocr.Recognize(ctx, frame, st.OCRLang)
		if err != nil {
			return nil, err
		}
		return FilterText(words, st.Keywords, st.OCRConf), nil

	case step.ModeTemplate:
		return FindTemplate(frame, st.Template, st.TplThresh), nil

	case step.ModeTemplateText:
		hits := FindTemplate(frame, st.Template, st.TplThresh)
		if len(hits) == 0 {
			return nil, nil
		}
		// Text search runs inside the first template hit only.
		region := hits[0].Box
		words, err := m.ocr.Recognize(ctx, crop(frame, region), st.OCRLang)
		if err != nil {
			return nil, err
		}
		inner := FilterText(words, st.Keywords, st.OCRConf)
		out := make([]Candidate, 0, len(inner))
		for _, c := range inner {
			c.Box = c.Box.Add(region.Min)
			c.Score = hits[0].Score
			out = append(out, c)
		}
		return out, nil
	}
	return nil, nil
}

// crop copies rect out of frame into an origin-anchored RGBA image.
func crop(frame image.Image, rect image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), frame, rect.Min.Add(frame.Bounds().Min), draw.Src)
	return dst
}
