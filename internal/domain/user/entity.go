package user

import "time"

// Status tracks the onboarding lifecycle: INIT until the face is enrolled,
// PENDING while an admin reviews the enrollment, ACTIVE once approved.
type Status string

const (
	StatusInit     Status = "INIT"
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type User struct {
	ID         string
	FullName   string
	Email      string
	Department *string
	Status     Status
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
