package accumulate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jblindsay/isi/internal/damprofile"
	"github.com/jblindsay/isi/internal/floodfill"
	"github.com/jblindsay/isi/internal/grid"
)

// On a flat plane, crest_elev equals the DEM everywhere (damprofile's own
// S1), so no cell's elevation ever falls strictly below its downstream
// threshold: every out_type must report zero.
func TestFlatPlaneProducesZeroOutput(t *testing.T) {
	dem := grid.NewGrid(6, 6, -9999, 3.0)
	crest := damprofile.Build(dem, 3, nil)
	flood := floodfill.Flood(dem, crest, nil)

	for _, outType := range []OutType{Area, Volume, Depth} {
		result := Run(dem, crest, flood, outType, 4.0, nil)
		for r := 0; r < 6; r++ {
			for c := 0; c < 6; c++ {
				assert.Zero(t, result.Output.Get(r, c))
			}
		}
	}
}

// A bowl-shaped terrain (low centre, rising towards the border) must never
// report a negative area, volume, or depth.
func TestBowlProducesNonNegativeOutput(t *testing.T) {
	dem := grid.NewGrid(7, 7, -9999, 0)
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			dr, dc := r-3, c-3
			dem.Set(r, c, float64(dr*dr+dc*dc))
		}
	}
	crest := damprofile.Build(dem, 3, nil)
	flood := floodfill.Flood(dem, crest, nil)

	for _, outType := range []OutType{Area, Volume, Depth} {
		result := Run(dem, crest, flood, outType, 1.0, nil)
		for r := 0; r < 7; r++ {
			for c := 0; c < 7; c++ {
				assert.GreaterOrEqual(t, result.Output.Get(r, c), 0.0)
			}
		}
	}
}

func TestAccumulateProgressReachesHundred(t *testing.T) {
	dem := grid.NewGrid(5, 5, -9999, 2.0)
	crest := damprofile.Build(dem, 3, nil)
	flood := floodfill.Flood(dem, crest, nil)

	last := 0
	Run(dem, crest, flood, Area, 1.0, func(pct int) { last = pct })

	assert.Equal(t, 100, last)
}
