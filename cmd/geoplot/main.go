package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kass/go-geo-plot/pkg/config"
	"github.com/kass/go-geo-plot/pkg/geo"
	"github.com/kass/go-geo-plot/pkg/geom"
	"github.com/kass/go-geo-plot/pkg/plot"
	"github.com/kass/go-geo-plot/pkg/pointio"
	"github.com/kass/go-geo-plot/pkg/proj"
	"github.com/kass/go-geo-plot/pkg/render"
	"github.com/kass/go-geo-plot/pkg/scalebar"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6"))

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))
)

var (
	scaleBarCfg = config.DefaultScaleBar()
	triangleCfg = config.Triangle{Digits: 6}
	maxDistCfg  = config.DefaultMaxDist()
)

var rootCmd = &cobra.Command{
	Use:   "geoplot",
	Short: "Plotting helpers for geographic maps",
	Long:  `Draw scale bars on projected maps, compute triangle areas and the largest great-circle distance of a point set.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return errors.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

var scaleBarCmd = &cobra.Command{
	Use:   "scalebar",
	Short: "Render a scale bar for a map extent",
	Long:  `Compute a scale bar for the given projection and plot extent and render it to a PNG image.`,
	Args:  cobra.NoArgs,
	RunE:  runScaleBar,
}

var triangleCmd = &cobra.Command{
	Use:   "triangle",
	Short: "Compute the area of a triangle",
	Long:  `Compute the planar area of a triangle from its vertex coordinates with the shoelace formula.`,
	Args:  cobra.NoArgs,
	RunE:  runTriangle,
}

var maxDistCmd = &cobra.Command{
	Use:   "maxdist",
	Short: "Find the largest great-circle distance in a point set",
	Long:  `Compare every pair of points of a CSV or XLSX file and report the largest great-circle distance. The comparison is O(N^2) and slow for large files.`,
	Args:  cobra.NoArgs,
	RunE:  runMaxDist,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	scaleBarCfg.Bind(scaleBarCmd.Flags())
	triangleCfg.Bind(triangleCmd.Flags())
	maxDistCfg.Bind(maxDistCmd.Flags())

	rootCmd.AddCommand(scaleBarCmd, triangleCmd, maxDistCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScaleBar(cmd *cobra.Command, args []string) error {
	if err := scaleBarCfg.Validate(); err != nil {
		return err
	}
	p, err := proj.Parse(scaleBarCfg.Projection)
	if err != nil {
		return err
	}
	opts, err := scaleBarCfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = logger

	w, h, _ := scaleBarCfg.ImageSize()
	ext := scaleBarCfg.MapExtent()
	canvas, err := render.NewCanvas(w, h, ext, color.White)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := scalebar.ScaleBar(plot.Map{Extent: ext, Projection: p}, canvas, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(scaleBarCfg.Out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()

	if scaleBarCfg.Mono {
		err = canvas.EncodeMono(f)
	} else {
		err = canvas.EncodePNG(f)
	}
	if err != nil {
		return err
	}

	logger.Info("rendered scale bar",
		zap.String("out", scaleBarCfg.Out),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Println(titleStyle.Render("Scale bar"))
	fmt.Printf("Projection: %s\n", dimStyle.Render(p.Name()))
	fmt.Printf("Length:     %s\n", statStyle.Render(fmt.Sprintf("%g %s (%.1f m)", res.Length, res.Unit.Symbol, res.AbsLen)))
	fmt.Printf("Start:      %.3f, %.3f\n", res.Start[0], res.Start[1])
	fmt.Printf("End x:      %.3f\n", res.End)
	if res.NDiv > 0 {
		fmt.Printf("Divisions:  %d\n", res.NDiv)
	}
	fmt.Printf("Saved to %s\n", scaleBarCfg.Out)
	return nil
}

func runTriangle(cmd *cobra.Command, args []string) error {
	area, err := geom.TriangleArea(triangleCfg.X, triangleCfg.Y, triangleCfg.Digits)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", titleStyle.Render("Area:"), statStyle.Render(fmt.Sprintf("%g", area)))
	return nil
}

func runMaxDist(cmd *cobra.Command, args []string) error {
	if err := maxDistCfg.Validate(); err != nil {
		return err
	}
	points, err := pointio.ReadFile(maxDistCfg.File, maxDistCfg.Sheet)
	if err != nil {
		return err
	}

	start := time.Now()
	d, i, j, err := geo.MaxEarthDistPair(points, maxDistCfg.Radius, geo.WithLogger(logger))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(titleStyle.Render("Max great-circle distance"))
	fmt.Printf("Points:   %d\n", len(points))
	fmt.Printf("Distance: %s\n", statStyle.Render(fmt.Sprintf("%.3f", d)))
	if i >= 0 {
		fmt.Printf("Between:  #%d (%.6f, %.6f) and #%d (%.6f, %.6f)\n",
			i+1, points[i].Lat, points[i].Lon, j+1, points[j].Lat, points[j].Lon)
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("Compared %d pairs in %v", len(points)*(len(points)-1)/2, elapsed)))
	return nil
}
