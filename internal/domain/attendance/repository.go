package attendance

import (
	"context"
	"time"
)

// LogRepository is the append-only attendance ledger. The store carries a
// unique index on (user_id, day, type); Insert surfaces a violation as
// ErrAlreadyCheckedIn / ErrAlreadyCheckedOut so concurrent duplicates cannot
// both land, regardless of any pre-check the service performed.
type LogRepository interface {
	// Insert appends one ledger entry.
	Insert(ctx context.Context, log Log) (Log, error)

	// GetByUserDayType returns the entry for (user, day, type), or nil when
	// none exists.
	GetByUserDayType(ctx context.Context, userID string, day time.Time, typ Type) (*Log, error)

	// ListByUserAndRange returns a user's entries with Timestamp in
	// [from, to), ascending by timestamp.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Log, error)
}
