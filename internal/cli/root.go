package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deathreport/internal/config"
	"deathreport/internal/engine"
	"deathreport/internal/models"
	"deathreport/internal/render"
	"deathreport/internal/report"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile  string
	dataPath string
	debug    bool

	cfg *config.Global
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	// CLI overrides
	f := cmd.Flags()
	if f.Changed("data") && a.dataPath != "" {
		c.DataPath = a.dataPath
	}
	if a.debug {
		c.LogLevel = "debug"
	}
	a.cfg = c
	return nil
}

func (a *app) settings() report.Settings {
	return report.Settings{
		TopN: a.cfg.TopN,
		Years: models.YearRange{
			Min:     a.cfg.YearMin,
			Max:     a.cfg.YearMax,
			Default: a.cfg.YearDefault,
		},
	}
}

func (a *app) chartSize() render.Size {
	return render.Size{Width: a.cfg.ChartWidth, Height: a.cfg.ChartHeight}
}

func (a *app) table() (*engine.Table, error) {
	return engine.Load(a.cfg.DataPath)
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "deathreport",
		Short: "Explore annual deaths by cause, country and year",
		Long: `deathreport loads the causes-of-death dataset and renders a single-year snapshot
or a multi-year trend, either in the terminal or through an HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// config init must work without a valid config
			if cmd.Annotations["skipConfig"] == "true" {
				return nil
			}
			return a.loadConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.deathreport/config.yaml)")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "path to the causes-of-death CSV (overrides config)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newSnapshotCmd(a),
		newTrendCmd(a),
		newOptionsCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute is the entry point called by main.main()
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}
