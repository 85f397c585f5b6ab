package payroll

import "context"

// Repository stores calculated payroll records. The store carries a unique
// index on (user_id, month, year); Insert surfaces a violation as
// ErrRecordAlreadyExists, which is the idempotency authority. The service's
// pre-check only exists for a friendlier fast path.
type Repository interface {
	Insert(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByUserPeriod(ctx context.Context, userID string, month, year int) (Record, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Record, error)
}
