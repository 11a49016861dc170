// Package accumulate implements the topological downstream sweep that
// propagates a multiset of upstream elevations from the divides produced by
// the priority-flood engine to the outlets, tallying reservoir area,
// volume, or mean depth at each cell along the way.
//
// Grounded on tools/d8FlowAccumulation.go's divide-stack / in-degree-
// decrement topological sweep in the go-spatial toolkit, generalized to
// propagate per-cell elevation multisets per
// original_source/src/tools/hydro_analysis/impoundment_index.rs's
// accumulation loop (the cutoff/threshold distinction and out_type
// dispatch have no go-spatial equivalent and are grounded directly on the
// Rust original).
package accumulate

import (
	"github.com/jblindsay/isi/internal/floodfill"
	"github.com/jblindsay/isi/internal/grid"
)

// OutType selects which measure of the reservoir the accumulation engine
// tallies.
type OutType int

const (
	// Area tallies flooded planimetric area.
	Area OutType = iota
	// Volume tallies reservoir volume.
	Volume
	// Depth tallies mean reservoir depth.
	Depth
)

// Result holds the primary ISI output raster. Per-cell reservoir membership
// counts are not kept; with OutType Area they can be recovered as
// Output / cellArea.
type Result struct {
	Output *grid.Grid
}

// ProgressFunc is called with a percentage in [0,100] as cells are solved.
// It may be nil.
type ProgressFunc func(percent int)

// Run performs the accumulation described in spec.md section 4.D. dem and
// crestElev are the inputs shared with the earlier stages; flood is the
// priority-flood result; cellArea is A = rx*ry.
func Run(dem, crestElev *grid.Grid, flood *floodfill.Result, outType OutType, cellArea float64, progress ProgressFunc) *Result {
	rows, cols := dem.Rows, dem.Cols
	output := grid.NewGrid(rows, cols, dem.NoData, 0)

	upslopeElevs := make([][]float64, rows*cols)

	stack := make([]grid.Cell, len(flood.Divides))
	copy(stack, flood.Divides)

	numInflowing := flood.NumInflowing
	flowDir := flood.FlowDir
	filledCrest := flood.FilledCrest

	totalCells := countDataCells(dem)
	solved := 0
	lastPct := -1
	report := func() {
		if progress == nil || totalCells == 0 {
			return
		}
		pct := 100 * solved / totalCells
		if pct > 100 {
			pct = 100
		}
		if pct != lastPct {
			progress(pct)
			lastPct = pct
		}
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		cell := stack[n]
		stack = stack[:n]

		numInflowing.Decrement(cell.Row, cell.Col)
		dir := flowDir.Get(cell.Row, cell.Col)
		idx := cell.Row*cols + cell.Col

		if dir >= 0 {
			down := grid.Step(cell, dir)
			downIdx := down.Row*cols + down.Col

			cutoff := filledCrest.Get(down.Row, down.Col)
			threshold := crestElev.Get(down.Row, down.Col)

			z := dem.Get(cell.Row, cell.Col)
			upslopeElevs[idx] = append(upslopeElevs[idx], z)

			var numUp, vol float64
			for _, u := range upslopeElevs[idx] {
				if u < cutoff {
					upslopeElevs[downIdx] = append(upslopeElevs[downIdx], u)
					if u < threshold {
						numUp++
						vol += threshold - u
					}
				}
			}
			upslopeElevs[idx] = upslopeElevs[idx][:0]

			switch outType {
			case Area:
				output.Set(down.Row, down.Col, output.Get(down.Row, down.Col)+numUp*cellArea)
			case Volume:
				output.Set(down.Row, down.Col, output.Get(down.Row, down.Col)+vol)
			case Depth:
				if numUp > 0 {
					output.Set(down.Row, down.Col, output.Get(down.Row, down.Col)+vol/(numUp*cellArea))
				}
			}

			if numInflowing.Decrement(down.Row, down.Col) == 0 {
				stack = append(stack, down)
			}
		}

		solved++
		report()
	}

	return &Result{Output: output}
}

func countDataCells(dem *grid.Grid) int {
	n := 0
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Cols; c++ {
			if !dem.IsNoData(r, c) {
				n++
			}
		}
	}
	return n
}
