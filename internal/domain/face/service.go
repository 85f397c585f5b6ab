package face

import "context"

// FaceService covers enrollment and verification. The histogram pipeline
// behind it is a placeholder-grade biometric; the encode/score/threshold
// boundary is stable so a stronger model can replace it.
type FaceService interface {
	// EnrollFace processes the submitted captures for the authenticated user,
	// stores the resulting encodings and moves the user to PENDING review.
	EnrollFace(ctx context.Context, req EnrollFaceRequest) (EnrollFaceResponse, error)

	// VerifyFace scores a probe capture against the authenticated user's
	// enrolled encodings without recording anything.
	VerifyFace(ctx context.Context, req VerifyFaceRequest) (VerifyFaceResponse, error)

	// RejectEnrollment clears a user's profile and resets their status to INIT
	// (admin review action).
	RejectEnrollment(ctx context.Context, userID string) error
}
