package attendance

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/goodzwork/hr-backend-go/internal/domain/attendance"
	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/domain/settings"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
	"github.com/goodzwork/hr-backend-go/internal/pkg/geo"
	"github.com/goodzwork/hr-backend-go/internal/pkg/storage"
)

type AttendanceServiceImpl struct {
	attendance.LogRepository
	user.UserRepository
	settingsService settings.SettingsService
	faceService     face.FaceService
	fileStorage     storage.FileStorage
	location        *time.Location
	now             func() time.Time
}

func NewAttendanceService(
	logRepo attendance.LogRepository,
	userRepo user.UserRepository,
	settingsService settings.SettingsService,
	faceService face.FaceService,
	fileStorage storage.FileStorage,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		LogRepository:   logRepo,
		UserRepository:  userRepo,
		settingsService: settingsService,
		faceService:     faceService,
		fileStorage:     fileStorage,
		location:        location,
		now:             time.Now,
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

// companyDay truncates a timestamp to its calendar day under the company
// timezone. The host timezone never participates.
func (a *AttendanceServiceImpl) companyDay(t time.Time) time.Time {
	local := t.In(a.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.location)
}

func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, lat, lon float64) (settings.CompanySettings, float64, error) {
	current, err := a.settingsService.Current(ctx)
	if err != nil {
		return settings.CompanySettings{}, 0, err
	}

	distance := geo.Distance(lat, lon, current.Latitude, current.Longitude)
	if distance > float64(current.RadiusMeters) {
		return current, distance, &attendance.GeofenceViolationError{
			DistanceMeters: distance,
			MaxMeters:      current.RadiusMeters,
		}
	}
	return current, distance, nil
}

// CheckLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckLocation(ctx context.Context, req attendance.LocationCheckRequest) (attendance.LocationCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LocationCheckResponse{}, err
	}

	current, err := a.settingsService.Current(ctx)
	if err != nil {
		return attendance.LocationCheckResponse{}, err
	}

	distance := geo.Distance(req.Latitude, req.Longitude, current.Latitude, current.Longitude)
	resp := attendance.LocationCheckResponse{
		Allowed:     distance <= float64(current.RadiusMeters),
		Distance:    distance,
		MaxDistance: current.RadiusMeters,
	}
	if resp.Allowed {
		resp.Message = "You are within the allowed area"
	} else {
		resp.Message = fmt.Sprintf("You are %.0fm from the office, maximum allowed distance is %dm",
			distance, current.RadiusMeters)
	}
	return resp, nil
}

// activeUser loads the authenticated user and rejects anyone not yet approved
// or deactivated.
func (a *AttendanceServiceImpl) activeUser(ctx context.Context) (user.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return user.User{}, err
	}

	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if u.Status != user.StatusActive {
		return user.User{}, user.ErrUserNotActive
	}
	return u, nil
}

// verifyFace runs the probe capture through face verification and turns a
// below-threshold score into a typed mismatch error.
func (a *AttendanceServiceImpl) verifyFace(ctx context.Context, probe string) (float64, error) {
	resp, err := a.faceService.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: probe})
	if err != nil {
		return 0, err
	}
	if !resp.IsMatch {
		return 0, &face.MismatchError{Confidence: resp.Confidence}
	}
	return resp.Confidence, nil
}

func (a *AttendanceServiceImpl) storeProof(ctx context.Context, userID string, day time.Time, typ attendance.Type, probe string) string {
	raw, err := facerec.EncodeBase64Raw(probe)
	if err != nil {
		return ""
	}
	path := fmt.Sprintf("attendance/%s/%s_%s.jpg", userID, day.Format("2006-01-02"), typ)
	stored, err := a.fileStorage.Upload(ctx, bytes.NewReader(raw), path, "image/jpeg")
	if err != nil {
		return ""
	}
	return stored
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	u, err := a.activeUser(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	current, _, err := a.checkGeofence(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := a.now().In(a.location)
	day := a.companyDay(now)

	// Fast path; the unique index still catches concurrent duplicates.
	existing, err := a.LogRepository.GetByUserDayType(ctx, u.ID, day, attendance.TypeCheckIn)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if existing != nil {
		return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
	}

	confidence, err := a.verifyFace(ctx, req.FaceImage)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	status, err := classifyCheckIn(now, current)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	log := attendance.Log{
		ID:             uuid.NewString(),
		UserID:         u.ID,
		UserName:       u.FullName,
		Type:           attendance.TypeCheckIn,
		Status:         status,
		Timestamp:      now,
		Day:            day,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Accuracy:       req.Accuracy,
		FaceImagePath:  a.storeProof(ctx, u.ID, day, attendance.TypeCheckIn, req.FaceImage),
		FaceConfidence: confidence,
	}

	saved, err := a.LogRepository.Insert(ctx, log)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		Message:    fmt.Sprintf("Welcome, %s!", u.FullName),
		UserName:   u.FullName,
		Time:       now.Format("15:04:05"),
		Status:     status,
		Confidence: confidence,
		LogID:      saved.ID,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	u, err := a.activeUser(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	current, _, err := a.checkGeofence(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := a.now().In(a.location)
	day := a.companyDay(now)

	checkIn, err := a.LogRepository.GetByUserDayType(ctx, u.ID, day, attendance.TypeCheckIn)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}
	if checkIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNotCheckedIn
	}

	existing, err := a.LogRepository.GetByUserDayType(ctx, u.ID, day, attendance.TypeCheckOut)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}
	if existing != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	confidence, err := a.verifyFace(ctx, req.FaceImage)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	status, err := classifyCheckOut(now, current)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	log := attendance.Log{
		ID:             uuid.NewString(),
		UserID:         u.ID,
		UserName:       u.FullName,
		Type:           attendance.TypeCheckOut,
		Status:         status,
		Timestamp:      now,
		Day:            day,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Accuracy:       req.Accuracy,
		FaceImagePath:  a.storeProof(ctx, u.ID, day, attendance.TypeCheckOut, req.FaceImage),
		FaceConfidence: confidence,
	}

	saved, err := a.LogRepository.Insert(ctx, log)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	workingHours := now.Sub(checkIn.Timestamp).Hours()

	return attendance.CheckOutResponse{
		Message:      fmt.Sprintf("Goodbye, %s!", u.FullName),
		UserName:     u.FullName,
		Time:         now.Format("15:04:05"),
		Status:       status,
		WorkingHours: workingHours,
		Confidence:   confidence,
		LogID:        saved.ID,
	}, nil
}

// Logs implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Logs(ctx context.Context, filter attendance.LogsFilter) ([]attendance.LogResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Default to the last 30 days.
	now := a.now().In(a.location)
	from := a.companyDay(now).AddDate(0, 0, -30)
	to := a.companyDay(now).AddDate(0, 0, 1)

	if filter.StartDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.StartDate, a.location)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		from = parsed
	}
	if filter.EndDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.EndDate, a.location)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		to = parsed.AddDate(0, 0, 1)
	}

	logs, err := a.LogRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, log := range logs {
		resp := attendance.LogResponse{
			ID:             log.ID,
			Type:           log.Type,
			Status:         log.Status,
			Timestamp:      log.Timestamp.In(a.location).Format("2006-01-02 15:04:05"),
			Latitude:       log.Latitude,
			Longitude:      log.Longitude,
			Accuracy:       log.Accuracy,
			FaceConfidence: log.FaceConfidence,
			Notes:          log.Notes,
		}
		if log.FaceImagePath != "" {
			resp.PhotoURL = a.fileStorage.URL(log.FaceImagePath)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	day := a.companyDay(a.now())

	resp := attendance.TodayStatusResponse{}

	checkIn, err := a.LogRepository.GetByUserDayType(ctx, userID, day, attendance.TypeCheckIn)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	if checkIn != nil {
		resp.CheckedIn = true
		t := checkIn.Timestamp.In(a.location).Format("15:04:05")
		resp.CheckInTime = &t
		status := checkIn.Status
		resp.CheckInStatus = &status
	}

	checkOut, err := a.LogRepository.GetByUserDayType(ctx, userID, day, attendance.TypeCheckOut)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	if checkOut != nil {
		resp.CheckedOut = true
		t := checkOut.Timestamp.In(a.location).Format("15:04:05")
		resp.CheckOutTime = &t
		status := checkOut.Status
		resp.CheckOutStatus = &status
	}

	return resp, nil
}

// CompanyLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CompanyLocation(ctx context.Context) (settings.CompanyLocationResponse, error) {
	return a.settingsService.CompanyLocation(ctx)
}
