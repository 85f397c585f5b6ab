package attendance

import (
	"fmt"
	"time"

	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
)

// secondsOfDay collapses a local timestamp to whole seconds since midnight.
// Sub-second precision never flips a punctuality status.
func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func parseClock(clock string) (int, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return parsed.Hour()*3600 + parsed.Minute()*60, nil
}

// classifyCheckIn returns LATE only when the arrival is strictly after the
// grace deadline, so arriving exactly at work start plus grace is ON_TIME.
func classifyCheckIn(at time.Time, s settings.CompanySettings) (attendance.Status, error) {
	start, err := parseClock(s.WorkStartTime)
	if err != nil {
		return "", err
	}

	deadline := start + s.LateGraceMinutes*60
	if secondsOfDay(at) > deadline {
		return attendance.StatusLate, nil
	}
	return attendance.StatusOnTime, nil
}

// classifyCheckOut returns EARLY_LEAVE for departures strictly before work
// end; leaving exactly at work end is ON_TIME.
func classifyCheckOut(at time.Time, s settings.CompanySettings) (attendance.Status, error) {
	end, err := parseClock(s.WorkEndTime)
	if err != nil {
		return "", err
	}

	if secondsOfDay(at) < end {
		return attendance.StatusEarlyLeave, nil
	}
	return attendance.StatusOnTime, nil
}
