// Package floodfill implements the priority-flood engine: a Barnes/
// Planchon-Darboux style depression fill, seeded from the raster border,
// that simultaneously assigns a D8 flow direction and in-degree count to
// every cell and produces the downstream-monotone filled_crest field.
//
// Grounded on tools/fillDepressions.go's region-growing seed queue and
// min-heap fill loop in the go-spatial toolkit, generalized from a
// single-raster fill to the dual crest_elev/filled_crest fill plus flow
// direction bookkeeping of impoundment_index.rs's flood loop and
// tools/d8FlowAccumulation.go's in-degree accumulation.
package floodfill

import (
	"container/list"

	"github.com/jblindsay/isi/internal/grid"
)

// background is the sentinel filled_crest value for a cell that has not yet
// been reached by the flood, matching impoundment_index.rs's
// background_val = i32::MIN + 1.
const background = float64(-2147483647)

// Result holds the three rasters the priority flood produces.
type Result struct {
	FilledCrest  *grid.Grid
	FlowDir      *grid.Int8Grid
	NumInflowing *grid.Int8Grid
	// Divides is the stack of cells with no inflowing neighbour, seeded for
	// the accumulation engine (spec.md section 4.C).
	Divides []grid.Cell
}

// ProgressFunc is called with a percentage in [0,100] as cells are solved.
// It may be nil.
type ProgressFunc func(percent int)

// Flood runs the priority-flood traversal over dem and crestElev (the
// output of the dam-profile builder).
func Flood(dem, crestElev *grid.Grid, progress ProgressFunc) *Result {
	rows, cols := dem.Rows, dem.Cols

	filled := grid.NewGrid(rows, cols, dem.NoData, background)
	flowDir := grid.NewInt8Grid(rows, cols, -1)
	numInflowing := grid.NewInt8Grid(rows, cols, -1)

	heap := grid.NewMinHeap(rows * cols)

	// Seed the region-growing pass with virtual coordinates one step outside
	// each raster edge; every such coordinate samples as nodata.
	queue := list.New()
	for r := 0; r < rows; r++ {
		queue.PushBack(grid.Cell{Row: r, Col: -1})
		queue.PushBack(grid.Cell{Row: r, Col: cols})
	}
	for c := 0; c < cols; c++ {
		queue.PushBack(grid.Cell{Row: -1, Col: c})
		queue.PushBack(grid.Cell{Row: rows, Col: c})
	}

	numCells := rows * cols
	numSolved := 0
	lastPct := -1
	reportSeed := func() {
		if progress == nil || numCells == 0 {
			return
		}
		pct := 100 * numSolved / numCells
		if pct != lastPct {
			progress(pct)
			lastPct = pct
		}
	}

	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		x := front.Value.(grid.Cell)

		for n := int8(0); n < 8; n++ {
			y := grid.Step(x, n)
			if filled.Get(y.Row, y.Col) != background {
				continue
			}
			if dem.IsNoData(y.Row, y.Col) {
				filled.Set(y.Row, y.Col, dem.NoData)
				queue.PushBack(y)
			} else {
				filled.Set(y.Row, y.Col, crestElev.Get(y.Row, y.Col))
				heap.Push(y, dem.Get(y.Row, y.Col))
			}
			numSolved++
		}
		reportSeed()
	}

	divides := make([]grid.Cell, 0, numCells)
	numSolved = 0
	lastPct = -1
	for heap.Len() > 0 {
		x, _ := heap.Pop()
		zout := filled.Get(x.Row, x.Col)

		count := int8(0)
		for n := int8(0); n < 8; n++ {
			y := grid.Step(x, n)
			if filled.Get(y.Row, y.Col) != background {
				continue
			}
			crestY := crestElev.Get(y.Row, y.Col)
			if crestY == dem.NoData {
				filled.Set(y.Row, y.Col, dem.NoData)
				continue
			}
			flowDir.Set(y.Row, y.Col, grid.BackLink[n])
			count++
			z := crestY
			if z < zout {
				z = zout
			}
			filled.Set(y.Row, y.Col, z)
			heap.Push(y, dem.Get(y.Row, y.Col))
		}
		numInflowing.Set(x.Row, x.Col, count)
		if count == 0 {
			divides = append(divides, x)
		}

		numSolved++
		if progress != nil && numCells > 0 {
			pct := 100 * numSolved / numCells
			if pct > 100 {
				pct = 100
			}
			if pct != lastPct {
				progress(pct)
				lastPct = pct
			}
		}
	}

	return &Result{FilledCrest: filled, FlowDir: flowDir, NumInflowing: numInflowing, Divides: divides}
}
