package facerec

import (
	"fmt"
	"image"

	pigo "github.com/esimov/pigo/core"
)

// MinFaceSize is the smallest face side length (in pixels) worth encoding.
const MinFaceSize = 50

// detectionQualityThreshold filters out low-confidence pigo detections.
const detectionQualityThreshold = 5.0

// Detector locates the dominant face in a grayscale image. Implementations
// must be safe for concurrent use; check-in pipelines for distinct users run
// in parallel.
type Detector interface {
	Detect(gray *image.Gray) (image.Rectangle, bool)
}

// PigoDetector detects faces with the pigo pixel-intensity-comparison cascade.
type PigoDetector struct {
	classifier *pigo.Pigo
}

// NewPigoDetector unpacks a pigo facefinder cascade. The cascade binary ships
// separately and its path comes from configuration.
func NewPigoDetector(cascade []byte) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack face cascade: %w", err)
	}
	return &PigoDetector{classifier: classifier}, nil
}

// Detect returns the bounding box of the highest-confidence face, if any.
func (d *PigoDetector) Detect(gray *image.Gray) (image.Rectangle, bool) {
	bounds := gray.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()

	maxSize := rows
	if cols < rows {
		maxSize = cols
	}
	if maxSize < MinFaceSize {
		return image.Rectangle{}, false
	}

	params := pigo.CascadeParams{
		MinSize:     MinFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: gray.Pix,
			Rows:   rows,
			Cols:   cols,
			Dim:    gray.Stride,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	best := pigo.Detection{}
	found := false
	for _, det := range dets {
		if det.Q < detectionQualityThreshold {
			continue
		}
		if !found || det.Q > best.Q {
			best = det
			found = true
		}
	}
	if !found {
		return image.Rectangle{}, false
	}

	half := best.Scale / 2
	rect := image.Rect(best.Col-half, best.Row-half, best.Col+half, best.Row+half)
	return rect.Intersect(bounds), true
}
