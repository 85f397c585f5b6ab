// Package facerec implements the face sample pipeline used by enrollment and
// attendance verification: blur gating, face detection, histogram encoding and
// correlation scoring. The detector and the encode/score pair are deliberately
// small boundaries so a stronger embedding model can replace them without
// touching callers.
package facerec

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	// CanonicalFaceSize is the side length faces are resized to before encoding.
	CanonicalFaceSize = 100
	// HistogramBins is the fixed encoding length, one bin per intensity value.
	HistogramBins = 256

	// DefaultBlurThreshold is the minimum Laplacian variance for a usable sample.
	DefaultBlurThreshold = 50.0
	// DefaultMatchThreshold is the minimum correlation score for a face match.
	DefaultMatchThreshold = 0.5
)

// Encoding is a fixed-length, L2-normalized intensity histogram of a face
// crop. Immutable once produced.
type Encoding []float64

// Encode crops the detected face region out of img, resizes it to the
// canonical size in grayscale and returns its normalized intensity histogram.
func Encode(img image.Image, face image.Rectangle) Encoding {
	canonical := image.NewGray(image.Rect(0, 0, CanonicalFaceSize, CanonicalFaceSize))
	xdraw.ApproxBiLinear.Scale(canonical, canonical.Bounds(), img, face, xdraw.Src, nil)

	hist := make(Encoding, HistogramBins)
	for _, px := range canonical.Pix {
		hist[px]++
	}

	var sumSq float64
	for _, v := range hist {
		sumSq += v * v
	}
	if norm := math.Sqrt(sumSq); norm > 0 {
		for i := range hist {
			hist[i] /= norm
		}
	}
	return hist
}

// Correlation scores two encodings with the Pearson correlation coefficient
// (the OpenCV HISTCMP_CORREL formula). The result is in [-1, 1]; 1 means the
// histograms are identical up to scale.
func Correlation(a, b Encoding) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	n := float64(len(a))
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

	var num, denA, denB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		denA += da * da
		denB += db * db
	}

	den := math.Sqrt(denA * denB)
	if den == 0 {
		return 0
	}
	return num / den
}

// BestMatch scores probe against every enrolled encoding and returns the
// maximum correlation.
func BestMatch(probe Encoding, enrolled []Encoding) float64 {
	best := math.Inf(-1)
	for _, enc := range enrolled {
		if score := Correlation(probe, enc); score > best {
			best = score
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}
