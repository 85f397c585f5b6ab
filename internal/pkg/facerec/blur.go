package facerec

import "image"

// LaplacianVariance measures image sharpness as the variance of the
// 4-neighbour Laplacian response over the grayscale interior. Low variance
// means few edges, i.e. a blurry or featureless capture.
func LaplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	stride := gray.Stride
	pix := gray.Pix
	count := (w - 2) * (h - 2)
	responses := make([]float64, 0, count)

	var sum float64
	for y := 1; y < h-1; y++ {
		row := y * stride
		for x := 1; x < w-1; x++ {
			center := float64(pix[row+x])
			lap := float64(pix[row+x-1]) + float64(pix[row+x+1]) +
				float64(pix[row-stride+x]) + float64(pix[row+stride+x]) -
				4*center
			responses = append(responses, lap)
			sum += lap
		}
	}

	mean := sum / float64(count)
	var variance float64
	for _, r := range responses {
		d := r - mean
		variance += d * d
	}
	return variance / float64(count)
}

// IsBlurry reports whether the image falls below the sharpness threshold.
func IsBlurry(gray *image.Gray, threshold float64) bool {
	return LaplacianVariance(gray) < threshold
}
