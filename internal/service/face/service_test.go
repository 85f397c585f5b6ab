package face

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/goodzwork/hr-backend-go/internal/config"
	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/domain/user"
	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", userID))
	return jwtauth.NewContext(context.Background(), token, nil)
}

// sharpCapture builds a base64 PNG with strong edges so it passes the blur
// gate. The seed shifts the pattern so captures are not byte-identical.
func sharpCapture(t *testing.T, seed int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x+y+seed)%2 == 0 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// flatCapture builds a featureless base64 PNG that fails the blur gate.
func flatCapture(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// ===== FAKES =====

type stubDetector struct {
	found bool
}

func (d stubDetector) Detect(gray *image.Gray) (image.Rectangle, bool) {
	if !d.found {
		return image.Rectangle{}, false
	}
	return gray.Bounds(), true
}

type fakeProfileRepo struct {
	profiles map[string]face.EnrollmentProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]face.EnrollmentProfile)}
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (face.EnrollmentProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return face.EnrollmentProfile{}, face.ErrProfileNotFound
}

func (r *fakeProfileRepo) Save(ctx context.Context, profile face.EnrollmentProfile) (face.EnrollmentProfile, error) {
	profile.SampleCount = len(profile.Encodings)
	profile.EnrolledAt = time.Now()
	profile.UpdatedAt = profile.EnrolledAt
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *fakeProfileRepo) Clear(ctx context.Context, userID string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return face.ErrProfileNotFound
	}
	p.Encodings = nil
	p.Registered = false
	p.SampleCount = 0
	r.profiles[userID] = p
	return nil
}

type fakeUserRepo struct {
	users     map[string]user.User
	updateErr error
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status user.Status) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Status = status
	r.users[id] = u
	return nil
}

// fakeTxManager runs fn directly but restores the repo maps when fn fails,
// mirroring a rollback.
type fakeTxManager struct {
	profiles *fakeProfileRepo
	users    *fakeUserRepo
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	profileSnap := make(map[string]face.EnrollmentProfile, len(m.profiles.profiles))
	for k, v := range m.profiles.profiles {
		profileSnap[k] = v
	}
	userSnap := make(map[string]user.User, len(m.users.users))
	for k, v := range m.users.users {
		userSnap[k] = v
	}

	if err := fn(ctx); err != nil {
		m.profiles.profiles = profileSnap
		m.users.users = userSnap
		return err
	}
	return nil
}

type countingStorage struct {
	uploads int
	deletes int
}

func (s *countingStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	s.uploads++
	return path, nil
}

func (s *countingStorage) Delete(ctx context.Context, path string) error {
	s.deletes++
	return nil
}

func (s *countingStorage) URL(path string) string { return path }

// ===== HARNESS =====

type harness struct {
	svc      *FaceServiceImpl
	profiles *fakeProfileRepo
	users    *fakeUserRepo
	store    *countingStorage
	detector *stubDetector
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	profiles := newFakeProfileRepo()
	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1": {ID: "emp-1", FullName: "Tran Minh", Status: user.StatusInit},
		"emp-2": {ID: "emp-2", FullName: "Le Hoa", Status: user.StatusActive},
	}}
	store := &countingStorage{}
	detector := &stubDetector{found: true}

	cfg := config.FaceConfig{
		MatchThreshold: facerec.DefaultMatchThreshold,
		BlurThreshold:  facerec.DefaultBlurThreshold,
	}

	tx := &fakeTxManager{profiles: profiles, users: users}
	svc := NewFaceService(profiles, users, tx, detector, store, cfg).(*FaceServiceImpl)
	return &harness{svc: svc, profiles: profiles, users: users, store: store, detector: detector}
}

func captures(t *testing.T, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sharpCapture(t, i))
	}
	return out
}

// ===== ENROLL =====

func TestEnrollFace_Success(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	resp, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})

	require.NoError(t, err)
	assert.Equal(t, 10, resp.EncodingsCount)
	assert.Equal(t, string(user.StatusPending), resp.Status)

	profile := h.profiles.profiles["emp-1"]
	assert.True(t, profile.Registered)
	assert.Len(t, profile.Encodings, 10)
	assert.Equal(t, 10, h.store.uploads)

	u, _ := h.users.GetByID(ctx, "emp-1")
	assert.Equal(t, user.StatusPending, u.Status)
}

func TestEnrollFace_BlurrySamplesDontCount(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	images := captures(t, 9)
	images = append(images, flatCapture(t), flatCapture(t), flatCapture(t))

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: images})

	var insufficient *face.InsufficientSamplesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 9, insufficient.Valid)

	_, profileErr := h.profiles.GetByUserID(ctx, "emp-1")
	assert.ErrorIs(t, profileErr, face.ErrProfileNotFound)

	u, _ := h.users.GetByID(ctx, "emp-1")
	assert.Equal(t, user.StatusInit, u.Status)
}

func TestEnrollFace_NoFaceSamplesDontCount(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.detector.found = false

	_, err := h.svc.EnrollFace(authContext(t, "emp-1"), face.EnrollFaceRequest{FaceImages: captures(t, 12)})

	var insufficient *face.InsufficientSamplesError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Valid)
}

func TestEnrollFace_CapsStoredSamples(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	resp, err := h.svc.EnrollFace(authContext(t, "emp-1"), face.EnrollFaceRequest{FaceImages: captures(t, 55)})

	require.NoError(t, err)
	assert.Equal(t, face.MaxSamples, resp.EncodingsCount)
	assert.Len(t, h.profiles.profiles["emp-1"].Encodings, face.MaxSamples)
}

func TestEnrollFace_TooFewImages(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.EnrollFace(authContext(t, "emp-1"), face.EnrollFaceRequest{FaceImages: captures(t, 5)})

	assert.Error(t, err)
}

func TestEnrollFace_StatusFailureRollsBackProfile(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.users.updateErr = errors.New("connection reset")
	ctx := authContext(t, "emp-1")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})

	require.Error(t, err)

	// A failed status update must not leave a registered profile behind.
	_, profileErr := h.profiles.GetByUserID(ctx, "emp-1")
	assert.ErrorIs(t, profileErr, face.ErrProfileNotFound)

	u, _ := h.users.GetByID(ctx, "emp-1")
	assert.Equal(t, user.StatusInit, u.Status)
}

func TestEnrollFace_ActiveUserKeepsStatus(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-2")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})

	require.NoError(t, err)
	u, _ := h.users.GetByID(ctx, "emp-2")
	assert.Equal(t, user.StatusActive, u.Status)
}

// ===== VERIFY =====

func TestVerifyFace_SelfMatch(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	probe := sharpCapture(t, 0)
	images := captures(t, 10)
	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: images})
	require.NoError(t, err)

	resp, err := h.svc.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: probe})

	require.NoError(t, err)
	assert.True(t, resp.IsMatch)
	assert.InDelta(t, 100.0, resp.Confidence, 0.5)
}

func TestVerifyFace_NotEnrolled(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := h.svc.VerifyFace(authContext(t, "emp-1"), face.VerifyFaceRequest{FaceImage: sharpCapture(t, 0)})

	assert.ErrorIs(t, err, face.ErrFaceNotEnrolled)
}

func TestVerifyFace_NoFaceInProbe(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})
	require.NoError(t, err)

	h.detector.found = false
	_, err = h.svc.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: sharpCapture(t, 0)})

	assert.ErrorIs(t, err, face.ErrNoFaceDetected)
}

func TestVerifyFace_BlurryProbe(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})
	require.NoError(t, err)

	_, err = h.svc.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: flatCapture(t)})

	assert.ErrorIs(t, err, face.ErrBlurryImage)
}

func TestVerifyFace_InvalidImage(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})
	require.NoError(t, err)

	_, err = h.svc.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: "not-an-image"})

	assert.Error(t, err)
}

// ===== REJECT =====

func TestRejectEnrollment_ClearsProfileAndResetsStatus(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := authContext(t, "emp-1")

	_, err := h.svc.EnrollFace(ctx, face.EnrollFaceRequest{FaceImages: captures(t, 10)})
	require.NoError(t, err)

	err = h.svc.RejectEnrollment(context.Background(), "emp-1")

	require.NoError(t, err)
	profile := h.profiles.profiles["emp-1"]
	assert.False(t, profile.Registered)
	assert.Empty(t, profile.Encodings)

	u, _ := h.users.GetByID(ctx, "emp-1")
	assert.Equal(t, user.StatusInit, u.Status)

	// Stored reference samples are removed along with the profile.
	assert.Equal(t, face.MinSamples, h.store.deletes)

	// Attendance verification must now fail until re-enrollment.
	_, err = h.svc.VerifyFace(ctx, face.VerifyFaceRequest{FaceImage: sharpCapture(t, 0)})
	assert.ErrorIs(t, err, face.ErrFaceNotEnrolled)
}

func TestRejectEnrollment_UnknownUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	err := h.svc.RejectEnrollment(context.Background(), "nobody")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRejectEnrollment_NoProfileIsFine(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	err := h.svc.RejectEnrollment(context.Background(), "emp-1")

	assert.NoError(t, err)
}
