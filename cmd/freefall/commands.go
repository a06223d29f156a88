package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/freefall/internal/config"
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/experiment"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/san-kum/freefall/internal/sim"
	"github.com/san-kum/freefall/internal/storage"
	"github.com/san-kum/freefall/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// progressInterval is the simulated time between progress lines.
const progressInterval = 1.0

func (o *options) runDrop(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	exp := experiment.New(*cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(newProgressLogger(log, progressInterval))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		log.WithError(err).Warn("run ended early, archiving partial result")
	}

	out := cmd.OutOrStdout()
	printSummary(out, cfg.Params, result)

	if o.noSave {
		return nil
	}
	st := storage.New(o.dataDir)
	runID, err := st.Save(cfg.Params, cfg.Integrator, cfg.Dt, result)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	log.WithField("run", runID).Info("run archived")
	fmt.Fprintf(out, "\nsaved: %s\n", runID)
	return nil
}

func printSummary(w io.Writer, p dynamo.Params, result *dynamo.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if result.Landed() {
		fmt.Fprintf(tw, "landed\t%.3f s\n", result.Final.Time)
	} else {
		fmt.Fprintf(tw, "airborne\t%.3f s at %.2f m\n", result.Final.Time, result.Final.Y)
	}
	if vt, ok := physics.TerminalVelocity(p); ok {
		fmt.Fprintf(tw, "terminal velocity\t%.3f m/s\n", vt)
	} else {
		fmt.Fprintf(tw, "terminal velocity\tnone (vacuum)\n")
	}
	fmt.Fprintf(tw, "vacuum fall time\t%.3f s\n", physics.VacuumFallTime(p))
	fmt.Fprintf(tw, "vacuum impact speed\t%.3f m/s\n", physics.VacuumImpactSpeed(p))
	fmt.Fprintf(tw, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(tw, "samples\t%d\n", len(result.Points))
	if result.Recoveries > 0 {
		fmt.Fprintf(tw, "recoveries\t%d\n", result.Recoveries)
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.4f\n", name, result.Metrics[name])
	}
	tw.Flush()
}

func (o *options) runLive(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := o.openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log, err := newLogger(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	stepper := sim.NewStepper(cfg.Params,
		sim.WithIntegrator(integ),
		sim.WithLogger(log.WithField("integrator", cfg.Integrator)),
		sim.WithHistory(cfg.HistoryCapacity, cfg.SampleInterval),
	)
	log.WithFields(logrus.Fields{
		"params": cfg.Params,
		"fps":    cfg.FPS,
	}).Info("live view started")

	return viz.Run(viz.NewModel(stepper, cfg.FPS, viz.ThemeByName(o.theme)))
}

func (o *options) listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(o.dataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tDT\tHEIGHT\tLANDED\tT_LAND\tIMPACT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%.1fm\t%t\t%.3fs\t%.2fm/s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.Dt,
			run.Params.Height,
			run.Landed,
			run.LandingTime,
			run.Metrics["impact_speed"],
		)
	}
	return w.Flush()
}

func (o *options) plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(o.dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return fmt.Errorf("run %s has too few samples to plot", meta.ID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "integrator: %s\n", meta.Integrator)
	fmt.Fprintf(out, "samples: %d\n\n", len(points))

	pos := make([]float64, len(points))
	for i, pt := range points {
		pos[i] = pt.Position
	}
	fmt.Fprintln(out, asciigraph.Plot(pos,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.Caption("height (m)"),
	))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.SpeedChart(points, meta.Params, viz.ThemeDefault, 80, 10))
	return nil
}

func (o *options) exportCSV(cmd *cobra.Command, args []string) error {
	points, err := storage.New(o.dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(cmd.OutOrStdout(), points)
}

func (o *options) exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(o.dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func (o *options) listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tHEIGHT\tCD\tRHO\tDIAM\tG\tSCALE\tVT")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		vt := "-"
		if v, ok := physics.TerminalVelocity(p); ok {
			vt = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%s\n",
			name, p.Mass, p.Height, p.DragCoeff, p.AirDensity, p.Diameter, p.Gravity, p.TimeScale, vt)
	}
	return w.Flush()
}

// compareIntegrators runs the same drop once per integrator. In a vacuum
// the landing time is checked against the closed form.
func (o *options) compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = []string{"semi-implicit", "explicit"}
	}

	registry := experiment.NewRegistry()
	_, hasDrag := physics.TerminalVelocity(cfg.Params)
	exact := physics.VacuumFallTime(cfg.Params)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators (dt=%.4f, height=%.1fm)\n\n", cfg.Dt, cfg.Params.Height)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tT_LAND\tIMPACT\tSTEPS\tVACUUM_ERR\tTIME_MS")

	for _, name := range names {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		s := sim.New(integ)
		for _, m := range registry.DefaultMetrics() {
			s.AddMetric(m)
		}

		start := time.Now()
		result, err := s.Run(cmd.Context(), cfg.Params, experiment.New(*cfg, nil).SimConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		vacErr := "-"
		if !hasDrag && result.Landed() {
			vacErr = fmt.Sprintf("%.2e", math.Abs(result.Final.Time-exact))
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%d\t%s\t%.2f\n",
			name,
			result.Final.Time,
			result.Metrics["impact_speed"],
			result.StepsTaken,
			vacErr,
			float64(elapsed.Microseconds())/1000,
		)
	}
	return w.Flush()
}

// sweep varies one parameter linearly and runs every drop concurrently.
func (o *options) sweep(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if o.sweepSteps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d: %w", o.sweepSteps, dynamo.ErrInvalidConfig)
	}

	values := linspace(o.sweepFrom, o.sweepTo, o.sweepSteps)
	params := make([]dynamo.Params, len(values))
	for i, v := range values {
		p, err := cfg.Params.WithParam(o.sweepParam, v)
		if err != nil {
			return err
		}
		params[i] = p
	}

	registry := experiment.NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ens := sim.NewEnsemble(integ, registry.DefaultMetrics)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, err := ens.Run(ctx, params, experiment.New(*cfg, nil).SimConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tT_LAND\tIMPACT\tVT\tTERMINAL_RATIO\n", strings.ToUpper(o.sweepParam))
	for i, r := range results {
		vt := "-"
		if v, ok := physics.TerminalVelocity(params[i]); ok {
			vt = fmt.Sprintf("%.2f", v)
		}
		land := "airborne"
		if r.Landed() {
			land = fmt.Sprintf("%.3f", r.Final.Time)
		}
		fmt.Fprintf(w, "%g\t%s\t%.3f\t%s\t%.3f\n",
			values[i], land, r.Metrics["impact_speed"], vt, r.Metrics["terminal_ratio"])
	}
	return w.Flush()
}

func linspace(from, to float64, n int) []float64 {
	if n == 1 {
		return []float64{from}
	}
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}
