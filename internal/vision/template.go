// Package vision locates click targets in a frame via template matching
// and keyword-filtered text regions.
package vision

import (
	"image"
	"math"
)

// Candidate is one matched target region. Score is set by template search,
// Text by text search; composed search fills both.
type Candidate struct {
	Box   image.Rectangle
	Score float64
	Text  string
}

// FindTemplate locates every occurrence of tpl in frame whose zero-mean
// normalized cross-correlation score meets threshold. Candidates are
// collected in row-major scan order; near-overlapping duplicates of the
// same instance are suppressed greedily (origin within half the template
// size of an accepted origin on both axes). A zero-area template yields
// an empty result.
func FindTemplate(frame image.Image, tpl image.Image, threshold float64) []Candidate {
	fw, fh, fpix := grayPixels(frame)
	tw, th, tpix := grayPixels(tpl)

	if tw <= 0 || th <= 0 || tw > fw || th > fh {
		return nil
	}

	n := float64(tw * th)

	// Zero-mean template and its norm.
	var tSum float64
	for _, v := range tpix {
		tSum += v
	}
	tMean := tSum / n
	tNorm := make([]float64, len(tpix))
	var tDen float64
	for i, v := range tpix {
		d := v - tMean
		tNorm[i] = d
		tDen += d * d
	}
	if tDen == 0 {
		// Flat template: correlation is undefined everywhere.
		return nil
	}
	tDen = math.Sqrt(tDen)

	// Summed-area tables for window sums and squared sums.
	sat, sqsat := integralImages(fw, fh, fpix)

	var accepted []Candidate
	halfW, halfH := tw/2, th/2

	for y := 0; y+th <= fh; y++ {
		for x := 0; x+tw <= fw; x++ {
			winSum := rectSum(sat, fw, x, y, tw, th)
			winSqSum := rectSum(sqsat, fw, x, y, tw, th)
			winDen := winSqSum - winSum*winSum/n
			if winDen <= 0 {
				continue
			}
			winDen = math.Sqrt(winDen)

			var num float64
			for j := 0; j < th; j++ {
				frow := (y+j)*fw + x
				trow := j * tw
				for i := 0; i < tw; i++ {
					num += fpix[frow+i] * tNorm[trow+i]
				}
			}

			score := num / (tDen * winDen)
			if score < threshold {
				continue
			}
			if suppressed(accepted, x, y, halfW, halfH) {
				continue
			}
			accepted = append(accepted, Candidate{
				Box:   image.Rect(x, y, x+tw, y+th),
				Score: score,
			})
		}
	}
	return accepted
}

// suppressed reports whether (x, y) lies within half the template size of
// an already-accepted candidate's origin on both axes.
func suppressed(accepted []Candidate, x, y, halfW, halfH int) bool {
	for _, c := range accepted {
		if abs(x-c.Box.Min.X) < halfW && abs(y-c.Box.Min.Y) < halfH {
			return true
		}
	}
	return false
}

// grayPixels flattens an image into row-major float64 luminance values.
func grayPixels(img image.Image) (w, h int, pix []float64) {
	if img == nil {
		return 0, 0, nil
	}
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return w, h, nil
	}
	pix = make([]float64, w*h)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma on 16-bit channels, scaled to 0-255.
			pix[i] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 257.0
			i++
		}
	}
	return w, h, pix
}

// integralImages builds summed-area tables of pix and pix², each sized
// (w+1)*(h+1) with a zero first row and column.
func integralImages(w, h int, pix []float64) (sat, sqsat []float64) {
	sw := w + 1
	sat = make([]float64, sw*(h+1))
	sqsat = make([]float64, sw*(h+1))
	for y := 0; y < h; y++ {
		var rowSum, rowSqSum float64
		for x := 0; x < w; x++ {
			v := pix[y*w+x]
			rowSum += v
			rowSqSum += v * v
			idx := (y+1)*sw + x + 1
			sat[idx] = sat[idx-sw] + rowSum
			sqsat[idx] = sqsat[idx-sw] + rowSqSum
		}
	}
	return sat, sqsat
}

// rectSum evaluates a summed-area table over the window at (x, y).
func rectSum(sat []float64, w, x, y, rw, rh int) float64 {
	sw := w + 1
	return sat[(y+rh)*sw+x+rw] - sat[y*sw+x+rw] - sat[(y+rh)*sw+x] + sat[y*sw+x]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
