package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidClock(t *testing.T) {
	_, ok := IsValidClock("08:30")
	assert.True(t, ok)
	_, ok = IsValidClock("17:30")
	assert.True(t, ok)
	_, ok = IsValidClock("25:00")
	assert.False(t, ok)
	_, ok = IsValidClock("8.30")
	assert.False(t, ok)
}

func TestCoordinateRanges(t *testing.T) {
	assert.True(t, IsValidLatitude(10.7769))
	assert.False(t, IsValidLatitude(91))
	assert.False(t, IsValidLatitude(-90.5))
	assert.True(t, IsValidLongitude(106.7009))
	assert.False(t, IsValidLongitude(-181))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
		{Field: "month", Message: "month must be between 1 and 12"},
	}
	assert.Contains(t, errs.Error(), "latitude")
	assert.Equal(t, "month must be between 1 and 12", errs.ToMap()["month"])
}
