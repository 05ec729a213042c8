package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"deathreport/internal/models"
	"deathreport/internal/render"
	"deathreport/internal/report"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		view    string
		vf      viewFlags
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the data behind a view as an Arrow IPC stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := models.ParseViewMode(view)
			if err != nil {
				return err
			}
			t, err := a.table()
			if err != nil {
				return err
			}
			sel := report.Complete(t, models.Selection{
				View:    mode,
				Country: vf.country,
				Year:    vf.year,
				Disease: vf.disease,
			}, a.settings())

			vm, err := report.Render(t, sel, a.settings())
			if err != nil {
				return err
			}
			if vm.NoData {
				return fmt.Errorf("%s", vm.Message)
			}

			if outPath == "" {
				outPath = render.Slug(vm.Title) + ".arrow"
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := render.WriteArrow(f, vm); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			log.Printf("Exported %q to %s", vm.Title, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&view, "view", "snapshot", "snapshot or trend")
	cmd.Flags().StringVar(&vf.country, "country", models.GlobalCountry, "country name or Global")
	cmd.Flags().IntVar(&vf.year, "year", 0, "snapshot year (default year_default from config)")
	cmd.Flags().StringVar(&vf.disease, "disease", "", "trend disease (default first column)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default derived from the title)")
	return cmd
}
