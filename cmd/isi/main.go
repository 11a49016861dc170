// Command isi computes the Impoundment Size Index for a DEM (spec.md
// section 6's CLI surface), built on github.com/spf13/cobra the way
// spatialmodel-inmap/inmaputil builds the inmap command tree, replacing
// go-spatial.go's hand-rolled flag/bufio REPL parsing.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jblindsay/isi/internal/config"
	"github.com/jblindsay/isi/internal/isi"
	"github.com/jblindsay/isi/internal/raster"
	"github.com/jblindsay/isi/internal/report"
	"github.com/jblindsay/isi/internal/units"
)

var (
	demPath    string
	outputPath string
	outTypeStr string
	damLength  float64
	cwd        string
	configFile string
	verbose    bool

	logger = logrus.New()
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		logger.WithError(err).Error("isi failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "isi",
		Short: "Calculates the impoundment size index (ISI) for a DEM",
		Long: "isi calculates, for every cell of a digital elevation model, the " +
			"crest elevation of the largest dam of a given length that could be " +
			"built through the cell, and a measure of the reservoir that would " +
			"form behind it (flooded area, volume, or mean depth).",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := cmd.Flags()
	flags.StringVar(&demPath, "dem", "", "input DEM raster (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "output raster (required)")
	flags.StringVar(&outTypeStr, "out_type", "depth", "one of area, volume, depth (substrings match, e.g. \"v\" -> volume)")
	flags.Float64Var(&damLength, "damlength", 0, "maximum dam length, in grid cells (> 0; when omitted, the configured default is used, 11 unless set)")
	flags.StringVar(&cwd, "cwd", "", "working directory bare filenames are resolved against")
	flags.StringVar(&configFile, "config", "", "optional config file for default out_type/damlength")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable progress and summary logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	resolver, err := config.New(cwd, configFile)
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}
	defaults := resolver.Defaults()
	if !cmd.Flags().Changed("out_type") {
		outTypeStr = defaults.OutType
	}
	if !cmd.Flags().Changed("damlength") {
		damLength = defaults.DamLength
	}

	if demPath == "" {
		return fmt.Errorf("--dem is required")
	}
	if outputPath == "" {
		return fmt.Errorf("--output is required")
	}

	demPath = resolver.ResolvePath(demPath)
	outputPath = resolver.ResolvePath(outputPath)

	logger.WithField("path", demPath).Info("reading DEM")
	dem, err := raster.Read(demPath)
	if err != nil {
		return fmt.Errorf("reading DEM: %w", err)
	}

	cellArea := units.Area(dem.ResolutionX * dem.ResolutionY)
	logger.WithFields(logrus.Fields{
		"resolution_x": fmt.Sprintf("%v", units.Length(dem.ResolutionX)),
		"resolution_y": fmt.Sprintf("%v", units.Length(dem.ResolutionY)),
		"cell_area":    fmt.Sprintf("%v", cellArea),
	}).Debug("DEM geometry")

	outType := isi.ParseOutType(outTypeStr)

	outputs, err := isi.Run(isi.Params{
		DEM:         dem.Grid,
		DamLength:   damLength,
		OutType:     outType,
		ResolutionX: dem.ResolutionX,
		ResolutionY: dem.ResolutionY,
		ToolName:    "ImpoundmentSizeIndex",
		InputPath:   demPath,
		Progress: func(stage string, pct int) {
			logger.WithFields(logrus.Fields{"stage": stage, "percent": pct}).Debug("progress")
		},
	})
	if err != nil {
		return fmt.Errorf("running ISI pipeline: %w", err)
	}

	isiRaster := raster.NewRaster(outputs.ISI, dem.North, dem.South, dem.East, dem.West)
	isiRaster.Palette = "spectrum.plt"
	for _, m := range outputs.Metadata {
		isiRaster.AddMetadataEntry(m)
	}
	if err := isiRaster.Write(outputPath); err != nil {
		return fmt.Errorf("writing ISI output: %w", err)
	}

	heightPath := raster.CompanionPath(outputPath, "_dam_height")
	heightRaster := raster.NewRaster(outputs.DamHeight, dem.North, dem.South, dem.East, dem.West)
	heightRaster.Palette = "spectrum.plt"
	for _, m := range outputs.Metadata {
		heightRaster.AddMetadataEntry(m)
	}
	if err := heightRaster.Write(heightPath); err != nil {
		return fmt.Errorf("writing dam-height output: %w", err)
	}

	if verbose {
		report.Log(logger, "isi", report.Summarize(outputs.ISI))
		report.Log(logger, "dam_height", report.Summarize(outputs.DamHeight))
	}

	logger.WithFields(logrus.Fields{
		"output":     outputPath,
		"dam_height": heightPath,
		"elapsed":    outputs.Elapsed,
	}).Info("done")
	return nil
}
