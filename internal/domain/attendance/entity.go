package attendance

import "time"

type Type string

const (
	TypeCheckIn  Type = "CHECK_IN"
	TypeCheckOut Type = "CHECK_OUT"
)

type Status string

const (
	StatusOnTime     Status = "ON_TIME"
	StatusLate       Status = "LATE"
	StatusEarlyLeave Status = "EARLY_LEAVE"

	// StatusAbsent is never written to the ledger; payroll derives it for
	// working days with no records at all.
	StatusAbsent Status = "ABSENT"
)

// Log is one append-only ledger entry. Day is the calendar day of Timestamp
// under the company timezone; together with UserID and Type it is unique, and
// that uniqueness is enforced by the store, not just checked beforehand.
type Log struct {
	ID             string
	UserID         string
	UserName       string
	Type           Type
	Status         Status
	Timestamp      time.Time
	Day            time.Time // date only, company timezone
	Latitude       float64
	Longitude      float64
	Accuracy       *float64
	FaceImagePath  string
	FaceConfidence float64
	Notes          *string
	CreatedAt      time.Time
}
