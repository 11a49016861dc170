package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jblindsay/isi/internal/grid"
)

func TestSummarizeIgnoresNoData(t *testing.T) {
	g := grid.NewGrid(2, 2, -9999, 0)
	g.Set(0, 0, 1.0)
	g.Set(0, 1, 2.0)
	g.Set(1, 0, 3.0)
	g.Set(1, 1, -9999)

	s := Summarize(g)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 2.0, s.Median)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
}

func TestSummarizeAllNoData(t *testing.T) {
	g := grid.NewGrid(2, 2, -9999, -9999)
	s := Summarize(g)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.Mean)
}
