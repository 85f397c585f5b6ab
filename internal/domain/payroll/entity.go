package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. This core only ever creates DRAFT records; approval and
// payment transitions belong to the excluded workflow.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusApproved Status = "APPROVED"
	StatusPaid     Status = "PAID"
)

// Per-day deduction rates in VND.
var (
	LateDeductionRate       = decimal.NewFromInt(50000)
	EarlyLeaveDeductionRate = decimal.NewFromInt(50000)
	AbsentDeductionRate     = decimal.NewFromInt(200000)
)

const (
	DeductionTypeLate       = "late"
	DeductionTypeEarlyLeave = "early_leave"
	DeductionTypeAbsent     = "absent"
)

type Deduction struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type Bonus struct {
	Type        string          `json:"type"` // "performance", "project", "holiday", ...
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Record is one calculated payroll, write-once per (user, month, year).
type Record struct {
	ID         string
	UserID     string
	UserName   string
	Department *string
	Month      int
	Year       int

	TotalWorkingDays  int
	ActualWorkingDays int
	LateDays          int
	EarlyLeaveDays    int
	AbsentDays        int

	BaseSalary      decimal.Decimal
	Deductions      []Deduction
	Bonuses         []Bonus
	TotalDeductions decimal.Decimal
	TotalBonuses    decimal.Decimal
	NetSalary       decimal.Decimal

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingDayStats is the per-user attendance aggregate a calculation is
// derived from. A day may count as both late and early-leave.
type WorkingDayStats struct {
	TotalWorkingDays  int
	ActualWorkingDays int
	LateDays          int
	EarlyLeaveDays    int
	AbsentDays        int
}
