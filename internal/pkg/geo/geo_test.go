package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, Distance(10.7769, 106.7009, 10.7769, 106.7009))
	assert.Equal(t, 0.0, Distance(0, 0, 0, 0))
	assert.Equal(t, 0.0, Distance(-37.95, 144.42, -37.95, 144.42))
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(10.7769, 106.7009, 10.7800, 106.7050)
	d2 := Distance(10.7800, 106.7050, 10.7769, 106.7009)
	assert.InDelta(t, d1, d2, 1e-6)
}

// Flinders Peak to Buninyong, the standard Vincenty reference pair
// (Geoscience Australia): 54,972.271 m.
func TestDistance_ReferencePair(t *testing.T) {
	d := Distance(-37.95103342, 144.42486789, -37.65282114, 143.92649553)
	assert.InDelta(t, 54972.271, d, 0.01)
}

func TestDistance_ShortRange(t *testing.T) {
	// ~0.0001 degree of latitude is about 11 m; well inside a 50 m radius.
	near := Distance(10.7769, 106.7009, 10.7770, 106.7009)
	assert.InDelta(t, 11.06, near, 0.1)
	assert.Less(t, near, 50.0)

	// ~0.002 degrees of latitude is about 221 m; well outside 50 m.
	far := Distance(10.7769, 106.7009, 10.7789, 106.7009)
	assert.Greater(t, far, 200.0)
	assert.Less(t, far, 250.0)
}

func TestDistance_Antipodal(t *testing.T) {
	// Near-antipodal points fall back to haversine instead of diverging.
	d := Distance(0, 0, 0.5, 179.7)
	assert.Greater(t, d, 19_000_000.0)
}
