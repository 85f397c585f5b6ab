package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/domain/payroll"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.Repository
	attendance.LogRepository
	user.UserRepository
	location *time.Location
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	logRepo attendance.LogRepository,
	userRepo user.UserRepository,
	location *time.Location,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		Repository:     payrollRepo,
		LogRepository:  logRepo,
		UserRepository: userRepo,
		location:       location,
	}
}

// countWeekdays returns the number of Monday-Friday days in the month.
func countWeekdays(year int, month time.Month, loc *time.Location) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	count := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// statsForPeriod aggregates one user's ledger for a month. Every calendar day
// with a check-in counts as worked, weekends included, and a day may count as
// both late and early-leave; only the expected-day total is Monday-Friday.
func (p *PayrollServiceImpl) statsForPeriod(ctx context.Context, userID string, month, year int) (payroll.WorkingDayStats, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, p.location)
	to := from.AddDate(0, 1, 0)

	logs, err := p.LogRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return payroll.WorkingDayStats{}, err
	}

	worked := make(map[string]bool)
	late := make(map[string]bool)
	earlyLeave := make(map[string]bool)

	for _, log := range logs {
		day := log.Timestamp.In(p.location).Format("2006-01-02")

		switch log.Type {
		case attendance.TypeCheckIn:
			worked[day] = true
			if log.Status == attendance.StatusLate {
				late[day] = true
			}
		case attendance.TypeCheckOut:
			if log.Status == attendance.StatusEarlyLeave {
				earlyLeave[day] = true
			}
		}
	}

	stats := payroll.WorkingDayStats{
		TotalWorkingDays:  countWeekdays(year, time.Month(month), p.location),
		ActualWorkingDays: len(worked),
		LateDays:          len(late),
		EarlyLeaveDays:    len(earlyLeave),
	}
	stats.AbsentDays = stats.TotalWorkingDays - stats.ActualWorkingDays
	if stats.AbsentDays < 0 {
		stats.AbsentDays = 0
	}
	return stats, nil
}

func buildDeductions(stats payroll.WorkingDayStats) []payroll.Deduction {
	deductions := []payroll.Deduction{}
	if stats.LateDays > 0 {
		deductions = append(deductions, payroll.Deduction{
			Type:        payroll.DeductionTypeLate,
			Description: fmt.Sprintf("Late arrival: %d day(s)", stats.LateDays),
			Amount:      payroll.LateDeductionRate.Mul(decimal.NewFromInt(int64(stats.LateDays))),
		})
	}
	if stats.EarlyLeaveDays > 0 {
		deductions = append(deductions, payroll.Deduction{
			Type:        payroll.DeductionTypeEarlyLeave,
			Description: fmt.Sprintf("Early leave: %d day(s)", stats.EarlyLeaveDays),
			Amount:      payroll.EarlyLeaveDeductionRate.Mul(decimal.NewFromInt(int64(stats.EarlyLeaveDays))),
		})
	}
	if stats.AbsentDays > 0 {
		deductions = append(deductions, payroll.Deduction{
			Type:        payroll.DeductionTypeAbsent,
			Description: fmt.Sprintf("Absence: %d day(s)", stats.AbsentDays),
			Amount:      payroll.AbsentDeductionRate.Mul(decimal.NewFromInt(int64(stats.AbsentDays))),
		})
	}
	return deductions
}

// Calculate implements payroll.PayrollService.
func (p *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	// Fast path; the unique index still rejects a concurrent duplicate.
	if _, err := p.Repository.GetByUserPeriod(ctx, req.UserID, req.Month, req.Year); err == nil {
		return payroll.RecordResponse{}, payroll.ErrRecordAlreadyExists
	} else if !errors.Is(err, payroll.ErrRecordNotFound) {
		return payroll.RecordResponse{}, err
	}

	u, err := p.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	stats, err := p.statsForPeriod(ctx, req.UserID, req.Month, req.Year)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	deductions := buildDeductions(stats)

	totalDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	bonuses := req.Bonuses
	if bonuses == nil {
		bonuses = []payroll.Bonus{}
	}
	totalBonuses := decimal.Zero
	for _, b := range bonuses {
		totalBonuses = totalBonuses.Add(b.Amount)
	}

	net := req.BaseSalary.Sub(totalDeductions).Add(totalBonuses)
	if net.IsNegative() {
		net = decimal.Zero
	}

	record := payroll.Record{
		ID:                uuid.NewString(),
		UserID:            u.ID,
		UserName:          u.FullName,
		Department:        u.Department,
		Month:             req.Month,
		Year:              req.Year,
		TotalWorkingDays:  stats.TotalWorkingDays,
		ActualWorkingDays: stats.ActualWorkingDays,
		LateDays:          stats.LateDays,
		EarlyLeaveDays:    stats.EarlyLeaveDays,
		AbsentDays:        stats.AbsentDays,
		BaseSalary:        req.BaseSalary,
		Deductions:        deductions,
		Bonuses:           bonuses,
		TotalDeductions:   totalDeductions,
		TotalBonuses:      totalBonuses,
		NetSalary:         net,
		Status:            payroll.StatusDraft,
	}

	saved, err := p.Repository.Insert(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return toResponse(saved), nil
}

// Get implements payroll.PayrollService.
func (p *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := p.Repository.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return toResponse(record), nil
}

// List implements payroll.PayrollService.
func (p *PayrollServiceImpl) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := p.Repository.ListByPeriod(ctx, filter.Month, filter.Year)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses, nil
}

// Stats implements payroll.PayrollService.
func (p *PayrollServiceImpl) Stats(ctx context.Context, userID string, month, year int) (payroll.WorkingDayStats, error) {
	if month < 1 || month > 12 {
		return payroll.WorkingDayStats{}, fmt.Errorf("month must be between 1 and 12")
	}
	if _, err := p.UserRepository.GetByID(ctx, userID); err != nil {
		return payroll.WorkingDayStats{}, err
	}
	return p.statsForPeriod(ctx, userID, month, year)
}

func toResponse(r payroll.Record) payroll.RecordResponse {
	return payroll.RecordResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		UserName:          r.UserName,
		Department:        r.Department,
		Month:             r.Month,
		Year:              r.Year,
		TotalWorkingDays:  r.TotalWorkingDays,
		ActualWorkingDays: r.ActualWorkingDays,
		LateDays:          r.LateDays,
		EarlyLeaveDays:    r.EarlyLeaveDays,
		AbsentDays:        r.AbsentDays,
		BaseSalary:        r.BaseSalary,
		Deductions:        r.Deductions,
		Bonuses:           r.Bonuses,
		TotalDeductions:   r.TotalDeductions,
		TotalBonuses:      r.TotalBonuses,
		NetSalary:         r.NetSalary,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
