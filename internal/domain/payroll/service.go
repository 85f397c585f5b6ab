package payroll

import "context"

// PayrollService derives salary from the attendance ledger.
type PayrollService interface {
	// Calculate aggregates one user's ledger for the period into a DRAFT
	// record. Fails with ErrRecordAlreadyExists on recalculation.
	Calculate(ctx context.Context, req CalculateRequest) (RecordResponse, error)

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (RecordResponse, error)

	// List returns all records for a period.
	List(ctx context.Context, filter ListFilter) ([]RecordResponse, error)

	// Stats returns the working-day aggregate for one user and period without
	// creating a record.
	Stats(ctx context.Context, userID string, month, year int) (WorkingDayStats, error)
}
