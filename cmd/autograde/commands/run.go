// Package commands implements CLI command handlers for autograde.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/autograde/pkg/config"
	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/observability"
	"github.com/Sumatoshi-tech/autograde/pkg/report"
	"github.com/Sumatoshi-tech/autograde/pkg/version"
)

// ErrChecksFailed is returned by run when at least one check did not pass.
var ErrChecksFailed = errors.New("checks failed")

// observabilityInit sets up telemetry for one command invocation.
type observabilityInit func(cfg *config.Config) (observability.Providers, error)

// RunCommand holds the configuration for the run command.
type RunCommand struct {
	configPath string
	format     string
	htmlPath   string
	theme      string
	noColor    bool

	initObs observabilityInit
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(initObservability)
}

func newRunCommandWithDeps(initObs observabilityInit) *cobra.Command {
	rc := &RunCommand{initObs: initObs}

	cmd := &cobra.Command{
		Use:   "run <case.yaml>",
		Short: "Grade a submission against a case file",
		Long: `Load the data and chart named by a case file, evaluate every check and
print one row per check. Exits with status 1 when any check fails.`,
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE:         rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: ./autograde.yaml)")
	cmd.Flags().StringVar(&rc.format, "format", "", "Output format: table, json (overrides config)")
	cmd.Flags().StringVar(&rc.htmlPath, "html", "", "Write an HTML chart report to this path (overrides config)")
	cmd.Flags().StringVar(&rc.theme, "theme", "", "HTML report theme: light, dark (overrides config)")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored table output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	if rc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	providers, err := rc.initObs(cfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(cmd.Context())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	gm, err := observability.NewGradeMetrics(providers.Meter)
	if err != nil {
		return err
	}

	c, err := grader.LoadCase(args[0])
	if err != nil {
		return err
	}

	f, axes, err := c.LoadSubmission()
	if err != nil {
		return err
	}

	runner := grader.NewRunner(
		grader.WithTracer(providers.Tracer),
		grader.WithMetrics(gm),
		grader.WithLogger(providers.Logger),
	)

	results := runner.Run(cmd.Context(), c, f, axes)

	providers.Logger.InfoContext(cmd.Context(), "case graded",
		"case", c.Name, "checks", len(results), "passed", grader.AllPassed(results))

	err = report.Write(cmd.OutOrStdout(), cfg.Report.Format, c.Name, results)
	if err != nil {
		return err
	}

	if cfg.Report.HTML != "" {
		err = report.SaveHTML(cfg.Report.HTML, report.Theme(cfg.Report.Theme), c.Name, axes, results)
		if err != nil {
			return err
		}
	}

	if !grader.AllPassed(results) {
		sum := report.Summarize(c.Name, results)

		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, sum.Failed, sum.Total)
	}

	return nil
}

// loadConfig reads the config file and applies explicitly set flags on top.
func (rc *RunCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Report.Format = strings.ToLower(rc.format)
	}

	if cmd.Flags().Changed("html") {
		cfg.Report.HTML = rc.htmlPath
	}

	if cmd.Flags().Changed("theme") {
		cfg.Report.Theme = strings.ToLower(rc.theme)
	}

	return cfg, nil
}

// initObservability configures logging from cfg and exports telemetry when
// the standard OTEL_EXPORTER_OTLP_* variables name a collector.
func initObservability(cfg *config.Config) (observability.Providers, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	obsCfg.LogJSON = cfg.Logging.Format == "json"

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg.LogLevel = level

	return observability.Init(obsCfg)
}
