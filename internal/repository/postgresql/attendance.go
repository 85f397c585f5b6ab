package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

// Insert implements attendance.LogRepository. The attendance_logs table has
// UNIQUE (user_id, day, attendance_type), so a concurrent duplicate loses
// here even when both requests passed the service's pre-check.
func (r *attendanceRepository) Insert(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (
			id, user_id, user_name, attendance_type, status, recorded_at, day,
			latitude, longitude, accuracy, face_image_path, face_confidence, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.UserID,
		log.UserName,
		log.Type,
		log.Status,
		log.Timestamp,
		log.Day,
		log.Latitude,
		log.Longitude,
		log.Accuracy,
		log.FaceImagePath,
		log.FaceConfidence,
		log.Notes,
	).Scan(&log.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if log.Type == attendance.TypeCheckOut {
				return attendance.Log{}, attendance.ErrAlreadyCheckedOut
			}
			return attendance.Log{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Log{}, fmt.Errorf("failed to insert attendance log: %w", err)
	}

	return log, nil
}

// GetByUserDayType implements attendance.LogRepository.
func (r *attendanceRepository) GetByUserDayType(ctx context.Context, userID string, day time.Time, typ attendance.Type) (*attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, user_name, attendance_type, status, recorded_at, day,
			   latitude, longitude, accuracy, face_image_path, face_confidence, notes, created_at
		FROM attendance_logs
		WHERE user_id = $1
		  AND day = $2
		  AND attendance_type = $3
		LIMIT 1
	`

	var log attendance.Log
	err := q.QueryRow(ctx, query, userID, day, typ).Scan(
		&log.ID, &log.UserID, &log.UserName, &log.Type, &log.Status, &log.Timestamp, &log.Day,
		&log.Latitude, &log.Longitude, &log.Accuracy, &log.FaceImagePath, &log.FaceConfidence,
		&log.Notes, &log.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance log: %w", err)
	}

	return &log, nil
}

// ListByUserAndRange implements attendance.LogRepository.
func (r *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, user_name, attendance_type, status, recorded_at, day,
			   latitude, longitude, accuracy, face_image_path, face_confidence, notes, created_at
		FROM attendance_logs
		WHERE user_id = $1
		  AND recorded_at >= $2
		  AND recorded_at < $3
		ORDER BY recorded_at ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.Log
	for rows.Next() {
		var log attendance.Log
		err := rows.Scan(
			&log.ID, &log.UserID, &log.UserName, &log.Type, &log.Status, &log.Timestamp, &log.Day,
			&log.Latitude, &log.Longitude, &log.Accuracy, &log.FaceImagePath, &log.FaceConfidence,
			&log.Notes, &log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance logs: %w", err)
	}

	return logs, nil
}

func NewAttendanceRepository(db *database.DB) attendance.LogRepository {
	return &attendanceRepository{db: db}
}
