// Package damprofile implements the crest-elevation builder: for every data
// cell, it samples four oriented topographic profiles of a fixed length and
// derives the lowest possible dam crest that would span each offset along
// that profile, then folds the result into a per-cell maximum.
//
// Grounded on the dam-profile loop in
// original_source/src/tools/hydro_analysis/impoundment_index.rs, which has
// no Go-toolkit equivalent; the outer row/col scan and percentage-progress
// callback follow tools/fillDepressions.go's pattern in the go-spatial
// toolkit.
package damprofile

import (
	"math"

	"github.com/jblindsay/isi/internal/grid"
)

// orientation holds the two perpendicular directions (see grid.DX/DY) that a
// profile extends along, away from the centre cell. These four orientations
// — NE-SW, E-W, SE-NW, N-S — match impoundment_index.rs's perpendicular1/
// perpendicular2 tables.
var orientations = [4][2]int8{
	{2, 6}, // SE-NW profile
	{3, 7}, // N-S profile
	{4, 0}, // NE-SW profile
	{1, 5}, // E-W profile
}

// ProgressFunc is called with a percentage in [0,100] as rows complete. It
// may be nil.
type ProgressFunc func(percent int)

// Build computes crest_elev for every data cell of dem, given a maximum dam
// length damLength (grid cells). half = floor(damLength/2); len = 2*half+1,
// per spec.md section 3.
//
// The returned grid shares dem's dimensions and nodata mask: nodata cells in
// dem are nodata in the result; all other cells hold the highest crest
// elevation among all length-len dams, in any of the four orientations,
// whose span covers that cell.
func Build(dem *grid.Grid, damLength float64, progress ProgressFunc) *grid.Grid {
	half := int(math.Floor(damLength / 2))
	length := 2*half + 1

	crest := grid.NewGrid(dem.Rows, dem.Cols, dem.NoData, -32768)

	profile := make([]float64, length)
	filled := make([]float64, length)

	lastPct := -1
	for row := 0; row < dem.Rows; row++ {
		z := 0.0
		for col := 0; col < dem.Cols; col++ {
			z = dem.Get(row, col)
			if z == dem.NoData {
				crest.Set(row, col, dem.NoData)
				continue
			}
			for _, perp := range orientations {
				sampleProfile(dem, row, col, half, perp, profile)
				forwardFill(profile, filled)
				backwardRefine(profile, filled)
				updateCrest(crest, dem, row, col, half, perp, filled)
			}
		}
		if progress != nil {
			pct := 100 * row / maxInt(dem.Rows-1, 1)
			if pct != lastPct {
				progress(pct)
				lastPct = pct
			}
		}
	}
	return crest
}

// sampleProfile fills profile[0..length) with the DEM elevations centred on
// (row, col) along the orientation given by perp = {dirA, dirB}. Positions
// beyond the raster or on nodata sample as negative infinity, so they never
// raise a crest (spec.md section 4.B step 1).
func sampleProfile(dem *grid.Grid, row, col, half int, perp [2]int8, profile []float64) {
	profile[half] = dem.Get(row, col)

	ra, ca := row, col
	rb, cb := row, col
	for i := 1; i <= half; i++ {
		ra += int(grid.DY[perp[0]])
		ca += int(grid.DX[perp[0]])
		za := dem.Get(ra, ca)
		if za == dem.NoData {
			za = math.Inf(-1)
		}
		profile[half+i] = za

		rb += int(grid.DY[perp[1]])
		cb += int(grid.DX[perp[1]])
		zb := dem.Get(rb, cb)
		if zb == dem.NoData {
			zb = math.Inf(-1)
		}
		profile[half-i] = zb
	}
}

// forwardFill computes the running forward maximum (spec.md section 4.B
// step 2): F[0]=P[0]; F[i] = max(F[i-1], P[i]).
func forwardFill(profile, filled []float64) {
	filled[0] = profile[0]
	for i := 1; i < len(profile); i++ {
		if filled[i-1] > profile[i] {
			filled[i] = filled[i-1]
		} else {
			filled[i] = profile[i]
		}
	}
}

// backwardRefine applies the backward pass (spec.md section 4.B step 3).
// F[len-1] is reset to P[len-1] first — the boundary fix spec.md section 9
// calls out — then each interior index keeps the lower of its own forward
// fill and the refined value to its right, wherever that right neighbour's
// fill wave actually rose above the raw profile there.
func backwardRefine(profile, filled []float64) {
	n := len(profile)
	filled[n-1] = profile[n-1]
	for i := n - 2; i >= 1; i-- {
		if filled[i+1] > profile[i] {
			if filled[i+1] < filled[i] {
				filled[i] = filled[i+1]
			}
		} else {
			filled[i] = profile[i]
		}
	}
}

// updateCrest folds filled into crest_elev at every cell the profile
// touches (spec.md section 4.B step 4), taking the running maximum across
// all orientations and all cells.
func updateCrest(crest, dem *grid.Grid, row, col, half int, perp [2]int8, filled []float64) {
	raiseIfHigher(crest, row, col, filled[half])

	ra, ca := row, col
	rb, cb := row, col
	for i := 1; i <= half; i++ {
		ra += int(grid.DY[perp[0]])
		ca += int(grid.DX[perp[0]])
		if !dem.IsNoData(ra, ca) {
			raiseIfHigher(crest, ra, ca, filled[half+i])
		}

		rb += int(grid.DY[perp[1]])
		cb += int(grid.DX[perp[1]])
		if !dem.IsNoData(rb, cb) {
			raiseIfHigher(crest, rb, cb, filled[half-i])
		}
	}
}

func raiseIfHigher(crest *grid.Grid, row, col int, value float64) {
	if value > crest.Get(row, col) {
		crest.Set(row, col, value)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
