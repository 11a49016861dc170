package damprofile

import (
	"testing"

	"github.com/jblindsay/isi/internal/grid"
	"github.com/stretchr/testify/assert"
)

func newRowGrid(values []float64, nodata float64) *grid.Grid {
	g := grid.NewGrid(1, len(values), nodata, 0)
	for c, v := range values {
		g.Set(0, c, v)
	}
	return g
}

// S1 — flat plane: crest_elev should equal the DEM everywhere.
func TestBuildFlatPlane(t *testing.T) {
	dem := grid.NewGrid(5, 5, -9999, 10)
	crest := Build(dem, 3, nil)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			assert.Equal(t, 10.0, crest.Get(r, c))
		}
	}
}

// S2 — single V-valley, 1x5, elevations [10,5,1,5,10], L=5: the dam spanning
// the whole row tops out at the rim elevation, 10, at the centre cell.
func TestBuildVValley(t *testing.T) {
	dem := newRowGrid([]float64{10, 5, 1, 5, 10}, -9999)
	crest := Build(dem, 5, nil)
	assert.Equal(t, 10.0, crest.Get(0, 2))
}

// Invariant 1 (spec.md section 8): crest_elev >= dem on data cells.
func TestCrestNeverBelowDEM(t *testing.T) {
	dem := newRowGrid([]float64{1, 2, 3, 4, 5, 6, 7}, -9999)
	crest := Build(dem, 3, nil)
	for c := 0; c < dem.Cols; c++ {
		assert.GreaterOrEqual(t, crest.Get(0, c), dem.Get(0, c))
	}
}

// L = 1 (half = 0): crest_elev should be identical to the DEM (property 8).
func TestDamLengthOneIsIdentity(t *testing.T) {
	dem := newRowGrid([]float64{3, 1, 4, 1, 5, 9, 2}, -9999)
	crest := Build(dem, 1, nil)
	for c := 0; c < dem.Cols; c++ {
		assert.Equal(t, dem.Get(0, c), crest.Get(0, c))
	}
}

// Nodata propagates: an all-nodata DEM produces an all-nodata crest.
func TestAllNoDataProducesAllNoData(t *testing.T) {
	dem := grid.NewGrid(3, 3, -9999, -9999)
	crest := Build(dem, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.Equal(t, dem.NoData, crest.Get(r, c))
		}
	}
}

// Single-row DEM: orientations crossing the narrow axis sample off-grid as
// -Inf and must not raise a cell's crest above what the in-row profile
// establishes.
func TestSingleRowDoesNotOverflowNarrowAxis(t *testing.T) {
	dem := newRowGrid([]float64{1, 2, 3}, -9999)
	crest := Build(dem, 3, nil)
	assert.Equal(t, 3.0, crest.Get(0, 2))
}

func TestProgressCallbackReachesHundred(t *testing.T) {
	dem := grid.NewGrid(4, 4, -9999, 5)
	seen := 0
	Build(dem, 3, func(pct int) { seen = pct })
	assert.Equal(t, 100, seen)
}
