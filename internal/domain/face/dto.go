package face

import (
	"fmt"

	"github.com/goodzwork/hr-backend-go/internal/pkg/validator"
)

type EnrollFaceRequest struct {
	FaceImages []string `json:"face_images"` // base64 JPEG/PNG captures
}

func (r *EnrollFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.FaceImages) < MinSamples {
		errs = append(errs, validator.ValidationError{
			Field:   "face_images",
			Message: fmt.Sprintf("at least %d face images are required, got %d", MinSamples, len(r.FaceImages)),
		})
	}

	for i, img := range r.FaceImages {
		if validator.IsEmpty(img) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("face_images[%d]", i),
				Message: "face image must not be empty",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EnrollFaceResponse struct {
	EncodingsCount int    `json:"encodings_count"`
	Status         string `json:"status"`
	Message        string `json:"message"`
}

type VerifyFaceRequest struct {
	FaceImage string `json:"face_image"` // base64 probe capture
}

func (r *VerifyFaceRequest) Validate() error {
	if validator.IsEmpty(r.FaceImage) {
		return validator.ValidationErrors{{
			Field:   "face_image",
			Message: "face_image is required",
		}}
	}
	return nil
}

type VerifyFaceResponse struct {
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}
