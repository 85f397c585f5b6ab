package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
	"github.com/jackc/pgx/v5"
)

type faceProfileRepository struct {
	db *database.DB
}

// GetByUserID implements face.ProfileRepository.
func (r *faceProfileRepository) GetByUserID(ctx context.Context, userID string) (face.EnrollmentProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, encodings, registered, enrolled_at, updated_at
		FROM face_profiles
		WHERE user_id = $1
	`

	var (
		p   face.EnrollmentProfile
		raw []byte
	)
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &raw, &p.Registered, &p.EnrolledAt, &p.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return face.EnrollmentProfile{}, face.ErrProfileNotFound
		}
		return face.EnrollmentProfile{}, fmt.Errorf("failed to get face profile: %w", err)
	}

	if err := json.Unmarshal(raw, &p.Encodings); err != nil {
		return face.EnrollmentProfile{}, fmt.Errorf("failed to decode encodings: %w", err)
	}
	p.SampleCount = len(p.Encodings)

	return p, nil
}

// Save implements face.ProfileRepository.
func (r *faceProfileRepository) Save(ctx context.Context, profile face.EnrollmentProfile) (face.EnrollmentProfile, error) {
	q := GetQuerier(ctx, r.db)

	raw, err := json.Marshal(profile.Encodings)
	if err != nil {
		return face.EnrollmentProfile{}, fmt.Errorf("failed to encode encodings: %w", err)
	}

	query := `
		INSERT INTO face_profiles (user_id, encodings, registered, enrolled_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			encodings = EXCLUDED.encodings,
			registered = EXCLUDED.registered,
			enrolled_at = NOW(),
			updated_at = NOW()
		RETURNING enrolled_at, updated_at
	`

	err = q.QueryRow(ctx, query, profile.UserID, raw, profile.Registered).
		Scan(&profile.EnrolledAt, &profile.UpdatedAt)
	if err != nil {
		return face.EnrollmentProfile{}, fmt.Errorf("failed to save face profile: %w", err)
	}
	profile.SampleCount = len(profile.Encodings)

	return profile, nil
}

// Clear implements face.ProfileRepository.
func (r *faceProfileRepository) Clear(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	raw, _ := json.Marshal([]facerec.Encoding{})

	query := `
		UPDATE face_profiles
		SET encodings = $2, registered = FALSE, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := q.Exec(ctx, query, userID, raw)
	if err != nil {
		return fmt.Errorf("failed to clear face profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return face.ErrProfileNotFound
	}

	return nil
}

func NewFaceProfileRepository(db *database.DB) face.ProfileRepository {
	return &faceProfileRepository{db: db}
}
