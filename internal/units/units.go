// Package units gives the CLI's end-of-run summary dimensionally-checked
// physical quantities, built from github.com/ctessum/unit (vendored by
// spatialmodel-inmap). It is deliberately kept out of the per-cell hot loops
// in internal/damprofile, internal/floodfill, and internal/accumulate: the
// generic map-based Unit type is the right fit for a handful of summary
// values at the end of a run, not for millions of per-cell operations.
package units

import "github.com/ctessum/unit"

// Length wraps a distance in metres, e.g. a cell's planimetric resolution.
func Length(metres float64) *unit.Unit {
	return unit.New(metres, unit.Meter)
}

// Area wraps a planimetric area in square metres, e.g. A = rx*ry or a
// summed flooded-area output.
func Area(squareMetres float64) *unit.Unit {
	return unit.New(squareMetres, unit.Meter2)
}

// Volume wraps a reservoir volume in cubic metres.
func Volume(cubicMetres float64) *unit.Unit {
	return unit.New(cubicMetres, unit.Meter3)
}
