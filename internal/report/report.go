// Package report computes end-of-run summary statistics over the finished
// ISI raster and logs them, generalizing the go-spatial toolkit's own
// tools/quantiles.go and tools/elevationPercentile.go (which compute
// quantiles/percentiles of a DEM) to the ISI output raster instead.
package report

import (
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/jblindsay/isi/internal/grid"
)

// Summary holds the descriptive statistics of a finished raster's data
// cells.
type Summary struct {
	Count           int
	Mean, StdDev    float64
	Min, Max        float64
	Median          float64
}

// Summarize computes Summary over g's data cells (cells not equal to
// g.NoData). It returns the zero Summary if g has no data cells.
func Summarize(g *grid.Grid) Summary {
	values := make([]float64, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v := g.Get(r, c)
			if v != g.NoData {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return Summary{}
	}

	sort.Float64s(values)
	mean, std := stat.MeanStdDev(values, nil)

	return Summary{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    values[0],
		Max:    values[len(values)-1],
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
	}
}

// Log writes s to logger at info level, labelled with name.
func Log(logger *logrus.Logger, name string, s Summary) {
	logger.WithFields(logrus.Fields{
		"raster": name,
		"count":  s.Count,
		"mean":   s.Mean,
		"stddev": s.StdDev,
		"min":    s.Min,
		"max":    s.Max,
		"median": s.Median,
	}).Info("raster summary")
}
