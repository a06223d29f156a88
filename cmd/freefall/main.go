package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/freefall/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	integrator string
	theme      string
	noSave     bool

	mass       float64
	height     float64
	drag       float64
	density    float64
	diameter   float64
	gravity    float64
	timeScale  float64
	maxTime    float64
	dt         float64
	fps        int
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:          "freefall",
		Short:        "free-fall with quadratic drag",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runLive(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.dataDir, "data", ".freefall", "data directory")
	pf.StringVar(&o.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&o.preset, "preset", "", "use preset configuration")
	pf.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&o.integrator, "integrator", config.DefaultIntegrator, "integrator")
	pf.Float64Var(&o.mass, "mass", 0, "mass (kg)")
	pf.Float64Var(&o.height, "height", 0, "drop height (m)")
	pf.Float64Var(&o.drag, "drag", 0, "drag coefficient")
	pf.Float64Var(&o.density, "density", 0, "air density (kg/m³)")
	pf.Float64Var(&o.diameter, "diameter", 0, "diameter (m)")
	pf.Float64Var(&o.gravity, "gravity", 0, "gravitational acceleration (m/s²)")
	pf.Float64Var(&o.timeScale, "time-scale", 0, "simulated seconds per wall-clock second")
	pf.Float64Var(&o.dt, "dt", 0, "headless timestep (s)")
	pf.Float64Var(&o.maxTime, "time", 0, "headless duration limit (s)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a drop headless and archive it",
		Args:  cobra.NoArgs,
		RunE:  o.runDrop,
	}
	runCmd.Flags().BoolVar(&o.noSave, "no-save", false, "do not archive the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a drop with live visualization",
		Args:  cobra.NoArgs,
		RunE:  o.runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().IntVar(&o.fps, "fps", 0, "frame rate")
		c.Flags().StringVar(&o.theme, "theme", "default", "colour theme")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  o.listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  o.plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  o.exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run's metadata and trajectory as json",
		Args:  cobra.ExactArgs(1),
		RunE:  o.exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Args:  cobra.NoArgs,
		RunE:  o.listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrators...]",
		Short: "compare integrators on the same drop",
		RunE:  o.compareIntegrators,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run drops over a range of one parameter",
		Args:  cobra.NoArgs,
		RunE:  o.sweep,
	}
	sweepCmd.Flags().StringVar(&o.sweepParam, "param", "mass", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&o.sweepFrom, "from", 1, "first value")
	sweepCmd.Flags().Float64Var(&o.sweepTo, "to", 100, "last value")
	sweepCmd.Flags().IntVar(&o.sweepSteps, "steps", 10, "number of values")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, compareCmd, sweepCmd)
	return rootCmd
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flags set on the command line.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if o.preset != "" {
		cfg = config.GetPreset(o.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", o.preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		fileCfg, err := config.Load(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if o.preset != "" {
			fileCfg.Params = cfg.Params
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("mass", &cfg.Params.Mass, o.mass)
	set("height", &cfg.Params.Height, o.height)
	set("drag", &cfg.Params.DragCoeff, o.drag)
	set("density", &cfg.Params.AirDensity, o.density)
	set("diameter", &cfg.Params.Diameter, o.diameter)
	set("gravity", &cfg.Params.Gravity, o.gravity)
	set("time-scale", &cfg.Params.TimeScale, o.timeScale)
	set("dt", &cfg.Dt, o.dt)
	set("time", &cfg.MaxDuration, o.maxTime)
	if flags.Changed("integrator") || o.configFile == "" {
		cfg.Integrator = o.integrator
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	return log, nil
}

// openLogFile sends live-mode logs to the data directory so they do not
// tear the terminal UI.
func (o *options) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(o.dataDir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(o.dataDir, "freefall.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
