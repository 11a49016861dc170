// Package isi orchestrates the impoundment size index pipeline: it wires
// the dam-profile builder, priority-flood engine, and accumulation engine
// together, then assembles the two output rasters (spec.md section 4.E).
package isi

import (
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/jblindsay/isi/internal/accumulate"
	"github.com/jblindsay/isi/internal/damprofile"
	"github.com/jblindsay/isi/internal/floodfill"
	"github.com/jblindsay/isi/internal/grid"
)

// OutType is the CLI-facing output-type selector; Label and the conversion
// to accumulate.OutType live here so the accumulation engine itself stays
// free of string handling.
type OutType int

const (
	// Area requests flooded planimetric area.
	Area OutType = iota
	// Volume requests reservoir volume.
	Volume
	// Depth requests mean reservoir depth. This is the CLI default.
	Depth
)

// Label returns the metadata string stamped onto the output raster. Unlike
// the original whitebox-tools implementation, which mislabels the depth
// case as "reservoir volume" (spec.md section 9), every out_type gets its
// own distinct label here.
func (o OutType) Label() string {
	switch o {
	case Area:
		return "flooded area"
	case Volume:
		return "reservoir volume"
	case Depth:
		return "average reservoir depth"
	default:
		return "unknown"
	}
}

func (o OutType) toAccumulate() accumulate.OutType {
	switch o {
	case Area:
		return accumulate.Area
	case Volume:
		return accumulate.Volume
	default:
		return accumulate.Depth
	}
}

// ParseOutType matches a CLI out_type argument the way
// impoundment_index.rs's flag parser does: any value containing "v" selects
// volume, any value containing "depth" selects mean depth, and everything
// else (including the empty string) defaults to area. Note this means
// "area" itself does not need to be typed out — only a flag value that
// contains neither substring falls through to the area default.
func ParseOutType(s string) OutType {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(v, "v"):
		return Volume
	case strings.Contains(v, "depth"):
		return Depth
	default:
		return Area
	}
}

// Params are the invocation-contract inputs from spec.md section 6.
type Params struct {
	DEM       *grid.Grid
	DamLength float64
	OutType   OutType
	// ResolutionX/Y give the cell's planimetric dimensions; CellArea =
	// ResolutionX*ResolutionY.
	ResolutionX, ResolutionY float64

	// ToolName, InputPath are stamped into output metadata (spec.md section
	// 4.E / section 6).
	ToolName, InputPath string

	// Progress receives human-readable stage/percent updates. May be nil.
	Progress func(stage string, percent int)
}

// Outputs are the two rasters the core produces.
type Outputs struct {
	ISI       *grid.Grid
	DamHeight *grid.Grid
	Elapsed   time.Duration
	// Metadata lines to stamp on both output rasters; the out-type label is
	// one of these lines.
	Metadata []string
}

// Validate checks the invocation contract's input-error conditions (spec.md
// section 7), aggregating every violation instead of stopping at the first.
func (p *Params) Validate() error {
	var result *multierror.Error
	if p.DEM == nil {
		result = multierror.Append(result, errors.New("dem raster is required"))
	}
	if p.DamLength <= 0 {
		result = multierror.Append(result, errors.Errorf("dam_length must be > 0, got %v", p.DamLength))
	}
	if p.ResolutionX <= 0 || p.ResolutionY <= 0 {
		result = multierror.Append(result, errors.New("cell resolution must be positive"))
	}
	return result.ErrorOrNil()
}

// Run executes components B through E over Params and returns the finished
// rasters. It is a pure function of its inputs per spec.md section 6.
func Run(p Params) (*Outputs, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid parameters")
	}

	start := time.Now()
	dem := p.DEM
	cellArea := p.ResolutionX * p.ResolutionY

	crestElev := damprofile.Build(dem, p.DamLength, progressAdapter(p.Progress, "dam heights"))

	flood := floodfill.Flood(dem, crestElev, progressAdapter(p.Progress, "flow directions"))

	accResult := accumulate.Run(dem, crestElev, flood, p.OutType.toAccumulate(), cellArea, progressAdapter(p.Progress, "index"))

	damHeight := buildDamHeight(dem, crestElev, progressAdapter(p.Progress, "dam height output"))

	elapsed := time.Since(start)
	metadata := []string{
		"Created by isi's " + p.ToolName + " tool",
		"Input file: " + p.InputPath,
		"Dam length: " + formatFloat(p.DamLength),
		"Out type: " + p.OutType.Label(),
		"Elapsed Time (excluding I/O): " + elapsed.String(),
	}

	return &Outputs{
		ISI:       accResult.Output,
		DamHeight: damHeight,
		Elapsed:   elapsed,
		Metadata:  metadata,
	}, nil
}

// buildDamHeight computes dam_height = crest_elev - dem on data cells,
// nodata elsewhere, per spec.md section 4.E.
func buildDamHeight(dem, crestElev *grid.Grid, progress damprofile.ProgressFunc) *grid.Grid {
	out := grid.NewGrid(dem.Rows, dem.Cols, dem.NoData, 0)
	lastPct := -1
	for r := 0; r < dem.Rows; r++ {
		for c := 0; c < dem.Cols; c++ {
			z := dem.Get(r, c)
			if z == dem.NoData {
				out.Set(r, c, dem.NoData)
				continue
			}
			out.Set(r, c, crestElev.Get(r, c)-z)
		}
		if progress != nil {
			pct := 100 * r / maxInt(dem.Rows-1, 1)
			if pct != lastPct {
				progress(pct)
				lastPct = pct
			}
		}
	}
	return out
}

func progressAdapter(cb func(stage string, percent int), stage string) func(int) {
	if cb == nil {
		return nil
	}
	return func(pct int) { cb(stage, pct) }
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
