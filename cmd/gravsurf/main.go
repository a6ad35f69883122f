package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravsurf/internal/compute"
	"github.com/san-kum/gravsurf/internal/config"
	"github.com/san-kum/gravsurf/internal/engine"
	"github.com/san-kum/gravsurf/internal/export"
	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/geom"
	"github.com/san-kum/gravsurf/internal/marching"
	"github.com/san-kum/gravsurf/internal/metrics"
	"github.com/san-kum/gravsurf/internal/storage"
	"github.com/san-kum/gravsurf/internal/tui"
	"github.com/san-kum/gravsurf/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	gridSize   int
	axisMin    float64
	axisMax    float64
	massRatio  float64
	separation float64
	isolevel   float64
	orbitDeg   float64
	omega      float64
	frames     int
	dt         float64
	workers    int

	outPath string
	format  string

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	benchIters int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsurf",
		Short: "animated equipotential surfaces of a binary pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsurf", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	meshCmd := &cobra.Command{
		Use:   "mesh",
		Short: "extract a single isosurface mesh",
		RunE:  extractMesh,
	}
	addFieldFlags(meshCmd)
	meshCmd.Flags().StringVar(&outPath, "out", "mesh.obj", "output file")
	meshCmd.Flags().StringVar(&format, "format", "", "obj, ply or svg (default from extension)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an animated orbit and store the results",
		RunE:  runAnimation,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "angular speed (deg/s)")
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frame count")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "seconds per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "extract meshes across a parameter range in parallel",
		RunE:  runSweep,
	}
	addFieldFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "isolevel", "parameter to sweep (isolevel, ratio, separation)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.3, "range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.5, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of samples")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time field sampling and extraction",
		RunE:  runBench,
	}
	addFieldFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchIters, "iters", 30, "iterations")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "CPU workers (0 = all cores)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-10s ratio=%.1f sep=%.1f iso=%.2f\n",
					name, p.MassRatio, p.Separation, p.Isolevel)
			}
		},
	}

	rootCmd.AddCommand(meshCmd, runCmd, listCmd, sweepCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridSize, "size", config.DefaultGridSize, "grid points per axis")
	cmd.Flags().Float64Var(&axisMin, "min", config.DefaultAxisMin, "domain minimum")
	cmd.Flags().Float64Var(&axisMax, "max", config.DefaultAxisMax, "domain maximum")
	cmd.Flags().Float64Var(&massRatio, "ratio", config.DefaultMassRatio, "mass ratio (>= 1)")
	cmd.Flags().Float64Var(&separation, "separation", config.DefaultSeparation, "source half-separation")
	cmd.Flags().Float64Var(&isolevel, "isolevel", config.DefaultIsolevel, "isosurface threshold")
	cmd.Flags().Float64Var(&orbitDeg, "orbit", 0, "orbital phase (degrees)")
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func flagParams() engine.Params {
	return engine.Params{
		MassRatio:    massRatio,
		Separation:   separation,
		Isolevel:     isolevel,
		OrbitDegrees: orbitDeg,
		Omega:        omega,
	}
}

func extractMesh(cmd *cobra.Command, args []string) error {
	grid, err := field.NewGrid(gridSize, axisMin, axisMax)
	if err != nil {
		return err
	}

	values := field.NewScalarField(grid)
	sources := field.BinarySources(massRatio, separation, orbitDeg)
	field.NewSampler().Sample(grid, sources, values)

	start := time.Now()
	mesh, err := marching.Extract(grid, values, isolevel)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	f := format
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), ".")
	}
	switch f {
	case "obj":
		err = export.SaveOBJ(outPath, mesh)
	case "ply":
		err = export.SavePLY(outPath, mesh)
	case "svg":
		err = saveSVG(outPath, mesh)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d vertices, %d triangles (%.1fms)\n",
		outPath, mesh.VertexCount(), mesh.TriangleCount(), float64(elapsed.Microseconds())/1000)
	return nil
}

func saveSVG(path string, mesh *geom.Mesh) error {
	canvas := viz.NewCanvas(100, 50)
	cam := viz.NewCamera()
	cam.FitBox(mesh.Bounds())
	viz.RenderMesh(canvas, mesh, cam)
	return os.WriteFile(path, []byte(export.CanvasToSVG(canvas, 4)), 0644)
}

func runAnimation(cmd *cobra.Command, args []string) error {
	grid, err := field.NewGrid(gridSize, axisMin, axisMax)
	if err != nil {
		return err
	}
	params := flagParams()
	params.Orbit = true

	eng, err := engine.New(grid, params)
	if err != nil {
		return err
	}
	eng.AddMetric(metrics.NewTriangleCount())
	eng.AddMetric(metrics.NewSurfaceArea())
	eng.AddMetric(metrics.NewMeshDrift())

	cfg := engine.Config{Dt: dt, Frames: frames, ValidateMesh: true}
	start := time.Now()
	result, err := eng.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(gridSize, params, cfg, result, eng.Mesh())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d frames in %.2fs (%.1f fps)\n",
		runID, result.FramesDone, elapsed.Seconds(), float64(result.FramesDone)/elapsed.Seconds())
	for _, e := range result.Errors {
		fmt.Printf("  warning: %v\n", e)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, value)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tRATIO\tSEP\tISO\tFRAMES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.2f\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04"),
			r.MassRatio, r.Separation, r.Isolevel, r.Frames)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	grid, err := field.NewGrid(gridSize, axisMin, axisMax)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", sweepSteps)
	}

	variants := make([]engine.Params, sweepSteps)
	for i := range variants {
		v := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
		p := flagParams()
		switch sweepParam {
		case "isolevel":
			p.Isolevel = v
		case "ratio":
			p.MassRatio = v
		case "separation":
			p.Separation = v
		default:
			return fmt.Errorf("unknown sweep parameter %q", sweepParam)
		}
		variants[i] = p
	}

	start := time.Now()
	results, err := engine.NewSweep(grid, variants).Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tVERTS\tTRIS\tAREA\n", strings.ToUpper(sweepParam))
	for i, r := range results {
		v := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
		fmt.Fprintf(w, "%.3f\t%d\t%d\t%.2f\n", v, r.Vertices, r.Triangles, r.SurfaceArea)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d extractions in %.2fs\n", len(results), elapsed.Seconds())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if workers > 0 {
		compute.SetBackend(compute.NewCPUBackendWithWorkers(workers))
	}

	grid, err := field.NewGrid(gridSize, axisMin, axisMax)
	if err != nil {
		return err
	}
	values := field.NewScalarField(grid)
	sampler := field.NewSampler()
	sources := field.BinarySources(massRatio, separation, 0)

	var sampleTime, extractTime time.Duration
	var tris int
	for i := 0; i < benchIters; i++ {
		s0 := time.Now()
		sampler.Sample(grid, sources, values)
		sampleTime += time.Since(s0)

		s1 := time.Now()
		mesh, err := marching.Extract(grid, values, isolevel)
		if err != nil {
			return err
		}
		extractTime += time.Since(s1)
		tris = mesh.TriangleCount()
	}

	n := float64(benchIters)
	fmt.Printf("grid %d³ (%d samples), %d triangles, backend %s\n",
		gridSize, grid.Len(), tris, compute.GetBackend().Name())
	fmt.Printf("  sample   %.2fms/frame\n", sampleTime.Seconds()*1000/n)
	fmt.Printf("  extract  %.2fms/frame\n", extractTime.Seconds()*1000/n)
	return nil
}
