package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodzwork/hr-backend-go/internal/domain/payroll"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	id, user_id, user_name, department, period_month, period_year,
	total_working_days, actual_working_days, late_days, early_leave_days, absent_days,
	base_salary, deductions, bonuses, total_deductions, total_bonuses, net_salary,
	status, created_at, updated_at
`

// Insert implements payroll.Repository. The payroll_records table has
// UNIQUE (user_id, period_month, period_year).
func (r *payrollRepository) Insert(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	deductions, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to encode deductions: %w", err)
	}
	bonuses, err := json.Marshal(record.Bonuses)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to encode bonuses: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, user_id, user_name, department, period_month, period_year,
			total_working_days, actual_working_days, late_days, early_leave_days, absent_days,
			base_salary, deductions, bonuses, total_deductions, total_bonuses, net_salary,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.UserName,
		record.Department,
		record.Month,
		record.Year,
		record.TotalWorkingDays,
		record.ActualWorkingDays,
		record.LateDays,
		record.EarlyLeaveDays,
		record.AbsentDays,
		record.BaseSalary,
		deductions,
		bonuses,
		record.TotalDeductions,
		record.TotalBonuses,
		record.NetSalary,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to insert payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) scanRecord(row pgx.Row) (payroll.Record, error) {
	var (
		record     payroll.Record
		deductions []byte
		bonuses    []byte
	)
	err := row.Scan(
		&record.ID, &record.UserID, &record.UserName, &record.Department, &record.Month, &record.Year,
		&record.TotalWorkingDays, &record.ActualWorkingDays, &record.LateDays, &record.EarlyLeaveDays, &record.AbsentDays,
		&record.BaseSalary, &deductions, &bonuses, &record.TotalDeductions, &record.TotalBonuses, &record.NetSalary,
		&record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return payroll.Record{}, err
	}

	if err := json.Unmarshal(deductions, &record.Deductions); err != nil {
		return payroll.Record{}, fmt.Errorf("failed to decode deductions: %w", err)
	}
	if err := json.Unmarshal(bonuses, &record.Bonuses); err != nil {
		return payroll.Record{}, fmt.Errorf("failed to decode bonuses: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.Repository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE id = $1`

	record, err := r.scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetByUserPeriod implements payroll.Repository.
func (r *payrollRepository) GetByUserPeriod(ctx context.Context, userID string, month, year int) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE user_id = $1 AND period_month = $2 AND period_year = $3`

	record, err := r.scanRecord(q.QueryRow(ctx, query, userID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// ListByPeriod implements payroll.Repository.
func (r *payrollRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
		ORDER BY user_name ASC`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}
