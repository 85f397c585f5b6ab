package face

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/goodzwork/hr-backend-go/internal/config"
	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
	"github.com/goodzwork/hr-backend-go/internal/pkg/storage"
)

type FaceServiceImpl struct {
	face.ProfileRepository
	user.UserRepository
	tx          database.Transactor
	detector    facerec.Detector
	fileStorage storage.FileStorage
	cfg         config.FaceConfig
}

func NewFaceService(
	profileRepo face.ProfileRepository,
	userRepo user.UserRepository,
	tx database.Transactor,
	detector facerec.Detector,
	fileStorage storage.FileStorage,
	cfg config.FaceConfig,
) face.FaceService {
	return &FaceServiceImpl{
		ProfileRepository: profileRepo,
		UserRepository:    userRepo,
		tx:                tx,
		detector:          detector,
		fileStorage:       fileStorage,
		cfg:               cfg,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// encodeSample runs one capture through the sample pipeline: decode,
// grayscale, blur gate, detect, encode. A false return means the sample was
// unusable (blurry or faceless), which is not an error during enrollment.
func (s *FaceServiceImpl) encodeSample(encoded string) (facerec.Encoding, bool, error) {
	img, err := facerec.DecodeBase64Image(encoded)
	if err != nil {
		return nil, false, err
	}

	gray := facerec.Grayscale(img)
	if facerec.IsBlurry(gray, s.cfg.BlurThreshold) {
		return nil, false, nil
	}

	rect, found := s.detector.Detect(gray)
	if !found {
		return nil, false, nil
	}

	return facerec.Encode(gray, rect), true, nil
}

// EnrollFace implements face.FaceService.
func (s *FaceServiceImpl) EnrollFace(ctx context.Context, req face.EnrollFaceRequest) (face.EnrollFaceResponse, error) {
	if err := req.Validate(); err != nil {
		return face.EnrollFaceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return face.EnrollFaceResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return face.EnrollFaceResponse{}, err
	}

	var (
		encodings  []facerec.Encoding
		references []string
	)
	for _, capture := range req.FaceImages {
		enc, ok, err := s.encodeSample(capture)
		if err != nil {
			return face.EnrollFaceResponse{}, err
		}
		if !ok {
			continue
		}
		encodings = append(encodings, enc)
		if len(references) < face.MinSamples {
			references = append(references, capture)
		}
		// Extra valid samples beyond the cap are dropped in submission order.
		if len(encodings) == face.MaxSamples {
			break
		}
	}

	if len(encodings) < face.MinSamples {
		return face.EnrollFaceResponse{}, &face.InsufficientSamplesError{Valid: len(encodings)}
	}

	// Keep reference copies of the first valid samples for admin review.
	for i, capture := range references {
		raw, err := facerec.EncodeBase64Raw(capture)
		if err != nil {
			continue
		}
		path := fmt.Sprintf("faces/%s/sample_%02d.jpg", userID, i+1)
		if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(raw), path, "image/jpeg"); err != nil {
			return face.EnrollFaceResponse{}, fmt.Errorf("failed to store reference sample: %w", err)
		}
	}

	profile := face.EnrollmentProfile{
		UserID:     userID,
		Encodings:  encodings,
		Registered: true,
	}

	// Profile and status move together or not at all.
	status := u.Status
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.ProfileRepository.Save(txCtx, profile); err != nil {
			return err
		}
		// Enrollment puts a fresh account in front of the admin for review.
		if u.Status == user.StatusInit {
			if err := s.UserRepository.UpdateStatus(txCtx, userID, user.StatusPending); err != nil {
				return err
			}
			status = user.StatusPending
		}
		return nil
	})
	if err != nil {
		return face.EnrollFaceResponse{}, err
	}

	return face.EnrollFaceResponse{
		EncodingsCount: len(encodings),
		Status:         string(status),
		Message:        fmt.Sprintf("Face enrolled successfully with %d samples", len(encodings)),
	}, nil
}

// VerifyFace implements face.FaceService.
func (s *FaceServiceImpl) VerifyFace(ctx context.Context, req face.VerifyFaceRequest) (face.VerifyFaceResponse, error) {
	if err := req.Validate(); err != nil {
		return face.VerifyFaceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return face.VerifyFaceResponse{}, err
	}

	return s.verifyForUser(ctx, userID, req.FaceImage)
}

// verifyForUser scores a probe capture against a user's enrolled encodings.
// Shared with the attendance pipeline, which already knows the user.
func (s *FaceServiceImpl) verifyForUser(ctx context.Context, userID, probe string) (face.VerifyFaceResponse, error) {
	profile, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, face.ErrProfileNotFound) {
			return face.VerifyFaceResponse{}, face.ErrFaceNotEnrolled
		}
		return face.VerifyFaceResponse{}, err
	}
	if !profile.Registered || len(profile.Encodings) == 0 {
		return face.VerifyFaceResponse{}, face.ErrFaceNotEnrolled
	}

	img, err := facerec.DecodeBase64Image(probe)
	if err != nil {
		return face.VerifyFaceResponse{}, err
	}

	gray := facerec.Grayscale(img)
	if facerec.IsBlurry(gray, s.cfg.BlurThreshold) {
		return face.VerifyFaceResponse{}, face.ErrBlurryImage
	}

	rect, found := s.detector.Detect(gray)
	if !found {
		return face.VerifyFaceResponse{}, face.ErrNoFaceDetected
	}

	encoding := facerec.Encode(gray, rect)
	score := facerec.BestMatch(encoding, profile.Encodings)
	confidence := score * 100

	if score < s.cfg.MatchThreshold {
		return face.VerifyFaceResponse{
			IsMatch:    false,
			Confidence: confidence,
			Message:    "Face does not match",
		}, nil
	}

	return face.VerifyFaceResponse{
		IsMatch:    true,
		Confidence: confidence,
		Message:    "Face verified successfully",
	}, nil
}

// RejectEnrollment implements face.FaceService. The rejected user starts
// enrollment over from scratch.
func (s *FaceServiceImpl) RejectEnrollment(ctx context.Context, userID string) error {
	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return err
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ProfileRepository.Clear(txCtx, userID); err != nil {
			if !errors.Is(err, face.ErrProfileNotFound) {
				return err
			}
		}
		return s.UserRepository.UpdateStatus(txCtx, userID, user.StatusInit)
	})
	if err != nil {
		return err
	}

	// The stored reference samples are stale once the profile is cleared.
	for i := 1; i <= face.MinSamples; i++ {
		path := fmt.Sprintf("faces/%s/sample_%02d.jpg", userID, i)
		_ = s.fileStorage.Delete(ctx, path)
	}

	return nil
}
