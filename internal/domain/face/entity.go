package face

import (
	"time"

	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
)

const (
	// MinSamples is the minimum number of valid encodings an enrollment needs.
	MinSamples = 10
	// MaxSamples caps stored encodings; extra valid samples beyond the first
	// fifty are dropped in submission order, not by quality.
	MaxSamples = 50
)

// EnrollmentProfile holds one user's enrolled face encodings. It is replaced
// wholesale on re-enrollment and cleared on enrollment rejection; a profile
// with Registered=true always carries between MinSamples and MaxSamples
// encodings.
type EnrollmentProfile struct {
	UserID      string
	Encodings   []facerec.Encoding
	Registered  bool
	SampleCount int
	EnrolledAt  time.Time
	UpdatedAt   time.Time
}
