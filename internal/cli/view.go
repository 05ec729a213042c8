package cli

import (
	"github.com/spf13/cobra"

	"deathreport/internal/models"
	"deathreport/internal/render"
	"deathreport/internal/report"
)

type viewFlags struct {
	country  string
	year     int
	disease  string
	charts   string
	noCharts bool
}

func (a *app) present(cmd *cobra.Command, sel models.Selection, vf *viewFlags) error {
	t, err := a.table()
	if err != nil {
		return err
	}
	sel = report.Complete(t, sel, a.settings())
	vm, err := report.Render(t, sel, a.settings())
	if err != nil {
		return err
	}

	chartDir := a.cfg.OutDir
	if cmd.Flags().Changed("charts") {
		chartDir = vf.charts
	}
	if vf.noCharts {
		chartDir = ""
	}
	term := render.NewTerminal(cmd.OutOrStdout(), chartDir, a.chartSize())
	return report.Present(vm, term)
}

func addChartFlags(cmd *cobra.Command, vf *viewFlags) {
	cmd.Flags().StringVar(&vf.charts, "charts", "", "directory for chart PNGs (default out_dir from config)")
	cmd.Flags().BoolVar(&vf.noCharts, "no-charts", false, "do not write chart images")
}

func newSnapshotCmd(a *app) *cobra.Command {
	vf := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show every cause of death for one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := models.Selection{View: models.ViewSnapshot, Country: vf.country, Year: vf.year}
			return a.present(cmd, sel, vf)
		},
	}
	cmd.Flags().StringVar(&vf.country, "country", models.GlobalCountry, "country name or Global")
	cmd.Flags().IntVar(&vf.year, "year", 0, "year to show (default year_default from config)")
	addChartFlags(cmd, vf)
	return cmd
}

func newTrendCmd(a *app) *cobra.Command {
	vf := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show one cause of death across all years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := models.Selection{View: models.ViewTrend, Country: vf.country, Disease: vf.disease}
			return a.present(cmd, sel, vf)
		},
	}
	cmd.Flags().StringVar(&vf.country, "country", models.GlobalCountry, "country name or Global")
	cmd.Flags().StringVar(&vf.disease, "disease", "", "disease column (default first column)")
	addChartFlags(cmd, vf)
	return cmd
}
