package face

import "context"

// ProfileRepository stores enrollment profiles, one per user.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (EnrollmentProfile, error)

	// Save replaces the user's profile wholesale.
	Save(ctx context.Context, profile EnrollmentProfile) (EnrollmentProfile, error)

	// Clear empties the encodings and resets the registered flag, used when an
	// admin rejects an enrollment.
	Clear(ctx context.Context, userID string) error
}
