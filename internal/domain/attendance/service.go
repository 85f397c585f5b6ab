package attendance

import (
	"context"

	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
)

// AttendanceService runs the check-in/check-out pipeline: geofence gate, face
// verification, punctuality classification, ledger append.
type AttendanceService interface {
	// CheckLocation evaluates the geofence with no side effect, for UI gating
	// before camera access is granted.
	CheckLocation(ctx context.Context, req LocationCheckRequest) (LocationCheckResponse, error)

	// CheckIn records the day's arrival for the authenticated user.
	CheckIn(ctx context.Context, req CheckRequest) (CheckInResponse, error)

	// CheckOut records the day's departure; requires a same-day check-in.
	CheckOut(ctx context.Context, req CheckRequest) (CheckOutResponse, error)

	// Logs returns the authenticated user's ledger entries, ascending by
	// timestamp.
	Logs(ctx context.Context, filter LogsFilter) ([]LogResponse, error)

	// TodayStatus reports whether check-in/check-out already happened today.
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// CompanyLocation returns the public geofence descriptor.
	CompanyLocation(ctx context.Context) (settings.CompanyLocationResponse, error)
}
