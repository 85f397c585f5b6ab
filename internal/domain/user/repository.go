package user

import "context"

// UserRepository is the read/update surface this core needs from the user
// store; full user CRUD belongs to the excluded back-office collaborators.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)

	// UpdateStatus moves a user through the onboarding lifecycle
	// (INIT -> PENDING on enrollment, back to INIT on rejection).
	UpdateStatus(ctx context.Context, id string, status Status) error
}
