package report

import (
	"fmt"

	"deathreport/internal/models"
)

// Presenter is implemented by a rendering shell. Report content arrives
// already computed; a presenter only draws it.
type Presenter interface {
	Markdown(text string) error
	BarChart(labels []string, values []float64, title string) error
	LineChart(xs, ys []float64, title string, markers bool) error
	Table(title string, columns []string, rows [][]string) error
}

// Present walks a view model in page order: title, overview, chart,
// insights, table, conclusion. A NoData view shows its message in place of
// the chart, insights and table.
func Present(vm *models.ViewModel, p Presenter) error {
	steps := []func() error{
		func() error { return p.Markdown("# " + vm.PageTitle) },
		func() error { return p.Markdown(vm.Overview) },
	}

	if vm.NoData {
		steps = append(steps, func() error { return p.Markdown("> **" + vm.Message + "**") })
	} else {
		if vm.Chart != nil {
			steps = append(steps, func() error { return presentChart(vm.Chart, p) })
		}
		if vm.Insights != "" {
			steps = append(steps, func() error { return p.Markdown(vm.Insights) })
		}
		if vm.Table != nil {
			steps = append(steps, func() error { return p.Table(vm.Table.Title, vm.Table.Columns, vm.Table.Rows) })
		}
	}
	steps = append(steps, func() error { return p.Markdown(vm.Conclusion) })

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func presentChart(c *models.Chart, p Presenter) error {
	switch c.Kind {
	case models.ChartBar:
		labels := make([]string, len(c.Points))
		values := make([]float64, len(c.Points))
		for i, pt := range c.Points {
			labels[i] = pt.Label
			values[i] = pt.Value
		}
		return p.BarChart(labels, values, c.Title)
	case models.ChartLine:
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for i, pt := range c.Points {
			xs[i] = pt.X
			ys[i] = pt.Value
		}
		return p.LineChart(xs, ys, c.Title, c.Markers)
	}
	return fmt.Errorf("unknown chart kind %q", c.Kind)
}
