package payroll

import (
	"github.com/goodzwork/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	UserID     string          `json:"user_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonuses    []Bonus         `json:"bonuses"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	for _, b := range r.Bonuses {
		if b.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "bonuses",
				Message: "bonus amounts must not be negative",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Department *string `json:"department,omitempty"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`

	TotalWorkingDays  int `json:"total_working_days"`
	ActualWorkingDays int `json:"actual_working_days"`
	LateDays          int `json:"late_days"`
	EarlyLeaveDays    int `json:"early_leave_days"`
	AbsentDays        int `json:"absent_days"`

	BaseSalary      decimal.Decimal `json:"base_salary"`
	Deductions      []Deduction     `json:"deductions"`
	Bonuses         []Bonus         `json:"bonuses"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalBonuses    decimal.Decimal `json:"total_bonuses"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	Status    Status `json:"status"`
	CreatedAt string `json:"created_at"`
}
