package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/domain/payroll"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyTZ = time.FixedZone("ICT", 7*3600)

// ===== FAKES =====

type fakePayrollRepo struct {
	byID     map[string]payroll.Record
	byPeriod map[string]string // user|month|year -> id
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		byID:     make(map[string]payroll.Record),
		byPeriod: make(map[string]string),
	}
}

func periodKey(userID string, month, year int) string {
	return userID + "|" + time.Month(month).String() + "|" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

func (r *fakePayrollRepo) Insert(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	key := periodKey(record.UserID, record.Month, record.Year)
	if _, exists := r.byPeriod[key]; exists {
		return payroll.Record{}, payroll.ErrRecordAlreadyExists
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	r.byID[record.ID] = record
	r.byPeriod[key] = record.ID
	return record, nil
}

func (r *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	if record, ok := r.byID[id]; ok {
		return record, nil
	}
	return payroll.Record{}, payroll.ErrRecordNotFound
}

func (r *fakePayrollRepo) GetByUserPeriod(ctx context.Context, userID string, month, year int) (payroll.Record, error) {
	if id, ok := r.byPeriod[periodKey(userID, month, year)]; ok {
		return r.byID[id], nil
	}
	return payroll.Record{}, payroll.ErrRecordNotFound
}

func (r *fakePayrollRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Record, error) {
	var out []payroll.Record
	for _, record := range r.byID {
		if record.Month == month && record.Year == year {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	logs []attendance.Log
}

func (r *fakeLogRepo) Insert(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	r.logs = append(r.logs, log)
	return log, nil
}

func (r *fakeLogRepo) GetByUserDayType(ctx context.Context, userID string, day time.Time, typ attendance.Type) (*attendance.Log, error) {
	return nil, nil
}

func (r *fakeLogRepo) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Log, error) {
	var out []attendance.Log
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		if log.Timestamp.Before(from) || !log.Timestamp.Before(to) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	return nil
}

// ===== HARNESS =====

type harness struct {
	svc  *PayrollServiceImpl
	logs *fakeLogRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dept := "Engineering"
	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1": {ID: "emp-1", FullName: "Tran Minh", Department: &dept, Status: user.StatusActive},
	}}
	logs := &fakeLogRepo{}

	svc := NewPayrollService(newFakePayrollRepo(), logs, users, companyTZ).(*PayrollServiceImpl)
	return &harness{svc: svc, logs: logs}
}

// addWorkday appends a check-in (and optionally a check-out) for one day.
func (h *harness) addWorkday(day time.Time, inStatus, outStatus attendance.Status) {
	checkIn := attendance.Log{
		ID:        uuid.NewString(),
		UserID:    "emp-1",
		Type:      attendance.TypeCheckIn,
		Status:    inStatus,
		Timestamp: time.Date(day.Year(), day.Month(), day.Day(), 8, 40, 0, 0, companyTZ),
		Day:       day,
	}
	h.logs.logs = append(h.logs.logs, checkIn)

	if outStatus != "" {
		checkOut := checkIn
		checkOut.ID = uuid.NewString()
		checkOut.Type = attendance.TypeCheckOut
		checkOut.Status = outStatus
		checkOut.Timestamp = time.Date(day.Year(), day.Month(), day.Day(), 17, 30, 0, 0, companyTZ)
		h.logs.logs = append(h.logs.logs, checkOut)
	}
}

// fillMonth records attendance for every weekday of June 2026 (22 working
// days): lateDays of them late, earlyDays of them with an early departure.
func (h *harness) fillMonth(lateDays, earlyDays int) {
	for d := time.Date(2026, 6, 1, 0, 0, 0, 0, companyTZ); d.Month() == time.June; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		inStatus := attendance.StatusOnTime
		if lateDays > 0 {
			inStatus = attendance.StatusLate
			lateDays--
		}
		outStatus := attendance.StatusOnTime
		if earlyDays > 0 {
			outStatus = attendance.StatusEarlyLeave
			earlyDays--
		}
		h.addWorkday(d, inStatus, outStatus)
	}
}

func calcReq(base int64) payroll.CalculateRequest {
	return payroll.CalculateRequest{
		UserID:     "emp-1",
		Month:      6,
		Year:       2026,
		BaseSalary: decimal.NewFromInt(base),
	}
}

// ===== CALCULATE =====

func TestCalculate_FullMonthWithDeductions(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(3, 1)

	resp, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))

	require.NoError(t, err)
	assert.Equal(t, 22, resp.TotalWorkingDays)
	assert.Equal(t, 22, resp.ActualWorkingDays)
	assert.Equal(t, 3, resp.LateDays)
	assert.Equal(t, 1, resp.EarlyLeaveDays)
	assert.Equal(t, 0, resp.AbsentDays)

	// 3 late + 1 early leave at 50,000 each.
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(200_000)),
		"total deductions = %s", resp.TotalDeductions)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(19_800_000)),
		"net salary = %s", resp.NetSalary)
	assert.Equal(t, payroll.StatusDraft, resp.Status)
}

func TestCalculate_PerfectMonth(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(0, 0)

	resp, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))

	require.NoError(t, err)
	assert.Empty(t, resp.Deductions)
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(20_000_000)))
}

func TestCalculate_AbsencesDeducted(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	// Attend only the first 20 weekdays of the month.
	attended := 0
	for d := time.Date(2026, 6, 1, 0, 0, 0, 0, companyTZ); d.Month() == time.June && attended < 20; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		h.addWorkday(d, attendance.StatusOnTime, attendance.StatusOnTime)
		attended++
	}

	resp, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))

	require.NoError(t, err)
	assert.Equal(t, 20, resp.ActualWorkingDays)
	assert.Equal(t, 2, resp.AbsentDays)

	// 2 absences at 200,000 each.
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(400_000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(19_600_000)))
}

func TestCalculate_EmptyLedgerIsAllAbsent(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	resp, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))

	require.NoError(t, err)
	assert.Equal(t, 22, resp.AbsentDays)
	assert.Equal(t, 0, resp.ActualWorkingDays)
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(4_400_000)))
}

func TestCalculate_NetSalaryNeverNegative(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	resp, err := h.svc.Calculate(context.Background(), calcReq(1_000_000))

	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(decimal.Zero), "net salary = %s", resp.NetSalary)
}

func TestCalculate_BonusesAdded(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(0, 0)

	req := calcReq(20_000_000)
	req.Bonuses = []payroll.Bonus{
		{Type: "performance", Description: "Q2 review", Amount: decimal.NewFromInt(1_500_000)},
	}

	resp, err := h.svc.Calculate(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.TotalBonuses.Equal(decimal.NewFromInt(1_500_000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(21_500_000)))
}

func TestCalculate_DuplicatePeriodFails(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(0, 0)

	_, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))
	require.NoError(t, err)

	_, err = h.svc.Calculate(context.Background(), calcReq(20_000_000))

	assert.ErrorIs(t, err, payroll.ErrRecordAlreadyExists)
}

func TestCalculate_WeekendLateStillDeducted(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(0, 0)

	// A late Saturday check-in counts as a worked day and earns its deduction;
	// only the expected-day total stays Monday-Friday.
	h.addWorkday(time.Date(2026, 6, 6, 0, 0, 0, 0, companyTZ), attendance.StatusLate, "")

	resp, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))

	require.NoError(t, err)
	assert.Equal(t, 22, resp.TotalWorkingDays)
	assert.Equal(t, 23, resp.ActualWorkingDays)
	assert.Equal(t, 1, resp.LateDays)
	assert.Equal(t, 0, resp.AbsentDays)
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(50_000)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(19_950_000)))
}

func TestCalculate_UnknownUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	req := calcReq(20_000_000)
	req.UserID = "nobody"

	_, err := h.svc.Calculate(context.Background(), req)

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCalculate_InvalidMonth(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	req := calcReq(20_000_000)
	req.Month = 13

	_, err := h.svc.Calculate(context.Background(), req)

	assert.Error(t, err)
}

// ===== GET / LIST / STATS =====

func TestGet_RoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(1, 0)

	created, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))
	require.NoError(t, err)

	fetched, err := h.svc.Get(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.LateDays, fetched.LateDays)
	assert.True(t, fetched.NetSalary.Equal(decimal.NewFromInt(19_950_000)))
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

func TestList_ByPeriod(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(0, 0)

	_, err := h.svc.Calculate(context.Background(), calcReq(20_000_000))
	require.NoError(t, err)

	records, err := h.svc.List(context.Background(), payroll.ListFilter{Month: 6, Year: 2026})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = h.svc.List(context.Background(), payroll.ListFilter{Month: 7, Year: 2026})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStats_WithoutRecordCreation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.fillMonth(2, 1)

	stats, err := h.svc.Stats(context.Background(), "emp-1", 6, 2026)

	require.NoError(t, err)
	assert.Equal(t, 22, stats.TotalWorkingDays)
	assert.Equal(t, 2, stats.LateDays)
	assert.Equal(t, 1, stats.EarlyLeaveDays)

	_, err = h.svc.Get(context.Background(), "anything")
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

func TestCountWeekdays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 22, countWeekdays(2026, time.June, companyTZ))
	assert.Equal(t, 23, countWeekdays(2026, time.July, companyTZ))
	assert.Equal(t, 20, countWeekdays(2026, time.February, companyTZ))
}
