package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/crseg"
)

type options struct {
	file       string
	config     string
	c0         float64
	c1         float64
	c2         float64
	maxCycle   int
	jsonOut    string
	geojsonOut string
	csvOut     string
	text       bool
	multiscale bool
	lon        float64
	lat        float64
	verbose    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})

	root := &cobra.Command{
		Use:          "crseg",
		Short:        "crseg splits street network into crossroads and branches",
		Long:         `crseg reads OpenStreetMap data (.osm, .xml or .pbf), detects crossroads and streets leaving them and exports the result as JSON, GeoJSON, CSV or plain text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, logger)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "Filename of OSM data (*.osm, *.xml or *.pbf)")
	flags.StringVarP(&opts.config, "config", "c", "", "Filename of TOML file with segmentation parameters")
	flags.Float64Var(&opts.c0, "C0", 2.0, "Multiplier of street width giving distance between crossroad center and its boundary")
	flags.Float64Var(&opts.c1, "C1", 2.5, "Multiplier of lane width giving neighbourhood for crossroads clustering")
	flags.Float64Var(&opts.c2, "C2", 4.0, "Multiplier of lane width giving maximum length of links between merged crossroads")
	flags.IntVar(&opts.maxCycle, "max-cycle-elements", 10, "Maximum number of crossroads in a cycle merged into single crossroad")
	flags.StringVar(&opts.jsonOut, "to-json", "", "Write crossroads to JSON file")
	flags.StringVar(&opts.geojsonOut, "to-geojson", "", "Write crossroads to GeoJSON file")
	flags.StringVar(&opts.csvOut, "to-csv", "", "Write labeled nodes and edges to '<name>_nodes.csv' and '<name>_edges.csv'")
	flags.BoolVar(&opts.text, "to-text", false, "Print crossroads as plain text")
	flags.BoolVar(&opts.multiscale, "multiscale", false, "Export inner regions of merged crossroads too")
	flags.Float64Var(&opts.lon, "lon", 0, "Longitude of the point of interest: only the nearest crossroad is exported")
	flags.Float64Var(&opts.lat, "lat", 0, "Latitude of the point of interest: only the nearest crossroad is exported")
	root.MarkFlagRequired("file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

func run(cmd *cobra.Command, opts *options, logger *log.Logger) error {
	params := crseg.DefaultParameters()
	if opts.config != "" {
		loaded, err := crseg.LoadParameters(opts.config)
		if err != nil {
			return err
		}
		params = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("C0") {
		params.C0 = opts.c0
	}
	if flags.Changed("C1") {
		params.C1 = opts.c1
	}
	if flags.Changed("C2") {
		params.C2 = opts.c2
	}
	if flags.Changed("max-cycle-elements") {
		params.MaxCycleElements = opts.maxCycle
	}
	if err := params.Validate(); err != nil {
		return err
	}
	logger.Debug(params.String())

	graph, err := crseg.ReadOSM(cmd.Context(), opts.file, crseg.WithReaderLogger(logger))
	if err != nil {
		return err
	}

	seg := crseg.NewSegmentation(graph, crseg.WithParameters(params), crseg.WithLogger(logger))
	seg.Process()
	logger.Info("Segmentation is done", "crossroads", len(seg.Crossroads()), "inner_regions", len(seg.InnerRegions()))

	pointOfInterest := flags.Changed("lon") || flags.Changed("lat")
	crossroads := seg.Crossroads()
	records := seg.Records(opts.multiscale)
	if pointOfInterest {
		pt := orb.Point{opts.lon, opts.lat}
		crossroads = seg.CrossroadAt(pt, opts.multiscale)
		records = seg.RecordsAt(pt, opts.multiscale)
	} else if opts.multiscale {
		crossroads = append(crossroads, seg.InnerRegions()...)
	}

	if opts.jsonOut != "" {
		if err := crseg.ExportJSON(opts.jsonOut, records); err != nil {
			return err
		}
		logger.Info("JSON has been written", "filename", opts.jsonOut)
	}
	if opts.geojsonOut != "" {
		if err := seg.ExportGeoJSON(opts.geojsonOut, opts.multiscale); err != nil {
			return err
		}
		logger.Info("GeoJSON has been written", "filename", opts.geojsonOut)
	}
	if opts.csvOut != "" {
		if err := seg.ExportToCSV(opts.csvOut, opts.multiscale); err != nil {
			return err
		}
		logger.Info("CSV has been written", "filename", opts.csvOut)
	}
	if opts.text {
		for _, c := range crossroads {
			fmt.Fprintln(cmd.OutOrStdout(), c.Text())
		}
	}
	return nil
}
