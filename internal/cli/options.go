package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"deathreport/internal/report"
)

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the available views, countries, diseases and years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			opts := report.Options(t, a.settings())
			out := cmd.OutOrStdout()
			heading := color.New(color.Bold)

			heading.Fprintln(out, "Views")
			for _, v := range opts.Views {
				fmt.Fprintf(out, "  %-9s %s\n", v.Value, v.Label)
			}
			heading.Fprintln(out, "Years")
			fmt.Fprintf(out, "  %d..%d (default %d)\n", opts.Years.Min, opts.Years.Max, opts.Years.Default)
			heading.Fprintf(out, "Countries (%d)\n", len(opts.Countries))
			fmt.Fprintln(out, "  "+strings.Join(opts.Countries, "\n  "))
			heading.Fprintf(out, "Diseases (%d)\n", len(opts.Diseases))
			fmt.Fprintln(out, "  "+strings.Join(opts.Diseases, "\n  "))
			return nil
		},
	}
}
