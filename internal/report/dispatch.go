package report

import (
	"errors"
	"fmt"
	"strconv"

	"deathreport/internal/engine"
	"deathreport/internal/models"
)

// Settings carries the report knobs that come from configuration.
type Settings struct {
	TopN  int
	Years models.YearRange
}

func DefaultSettings() Settings {
	return Settings{TopN: 5, Years: models.YearRange{Min: 1990, Max: 2019, Default: 2000}}
}

// Options lists the choices for each selection control.
func Options(t *engine.Table, s Settings) models.Options {
	return models.Options{
		Views: []models.ViewOption{
			{Value: models.ViewSnapshot, Label: models.ViewSnapshot.Label()},
			{Value: models.ViewTrend, Label: models.ViewTrend.Label()},
		},
		Countries: append([]string{models.GlobalCountry}, t.Countries()...),
		Diseases:  t.Diseases(),
		Years:     s.Years,
	}
}

// Complete fills unset selection fields with the control defaults: Global,
// the default slider year and the first disease column.
func Complete(t *engine.Table, sel models.Selection, s Settings) models.Selection {
	if sel.View == "" {
		sel.View = models.ViewSnapshot
	}
	if sel.Country == "" {
		sel.Country = models.GlobalCountry
	}
	switch sel.View {
	case models.ViewSnapshot:
		if sel.Year == 0 {
			sel.Year = s.Years.Default
		}
		sel.Disease = ""
	case models.ViewTrend:
		if sel.Disease == "" {
			if ds := t.Diseases(); len(ds) > 0 {
				sel.Disease = ds[0]
			}
		}
		sel.Year = 0
	}
	return sel
}

// Render runs the query for the selected view and builds the view model.
// A selection without data gives a NoData view model, not an error. Unknown
// diseases and view modes are errors.
func Render(t *engine.Table, sel models.Selection, s Settings) (*models.ViewModel, error) {
	vm := &models.ViewModel{
		Selection:  sel,
		PageTitle:  pageTitle(s),
		Overview:   overview(s),
		Conclusion: conclusion(s),
	}

	switch sel.View {
	case models.ViewSnapshot:
		counts, err := t.Snapshot(sel.Year, sel.Country)
		if errors.Is(err, engine.ErrNotFound) {
			return noData(vm, fmt.Sprintf("No data for %s in %d.", sel.Country, sel.Year)), nil
		}
		if err != nil {
			return nil, err
		}
		fillSnapshot(vm, counts, s)
	case models.ViewTrend:
		series, err := t.Trend(sel.Disease, sel.Country)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			return noData(vm, fmt.Sprintf("No data for %s in %s.", sel.Disease, sel.Country)), nil
		}
		fillTrend(vm, series, s)
	default:
		return nil, fmt.Errorf("unknown view mode %q", sel.View)
	}
	return vm, nil
}

func noData(vm *models.ViewModel, msg string) *models.ViewModel {
	vm.Title = msg
	vm.NoData = true
	vm.Message = msg
	return vm
}

type topLine struct {
	disease string
	deaths  int64
	share   float64
}

func fillSnapshot(vm *models.ViewModel, counts []models.DiseaseCount, s Settings) {
	sel := vm.Selection
	vm.Snapshot = counts
	vm.Top = engine.TopN(counts, s.TopN)
	vm.Title = fmt.Sprintf("Causes of Death in %s (%d)", sel.Country, sel.Year)

	chart := &models.Chart{
		Kind:   models.ChartBar,
		Title:  vm.Title,
		XAxis:  "Disease",
		YAxis:  "Deaths",
		Points: make([]models.ChartPoint, len(counts)),
	}
	var total int64
	for i, c := range counts {
		chart.Points[i] = models.ChartPoint{Label: c.Disease, X: float64(i), Value: float64(c.Deaths)}
		total += c.Deaths
	}
	vm.Chart = chart

	table := &models.Table{
		Title:   fmt.Sprintf("Top %d Causes of Death", s.TopN),
		Columns: []string{"Disease", "Deaths"},
		Rows:    make([][]string, len(vm.Top)),
	}
	lines := make([]topLine, len(vm.Top))
	for i, c := range vm.Top {
		table.Rows[i] = []string{c.Disease, FormatDeaths(c.Deaths)}
		lines[i] = topLine{disease: c.Disease, deaths: c.Deaths}
		if total > 0 {
			lines[i].share = float64(c.Deaths) / float64(total) * 100
		}
	}
	vm.Table = table
	vm.Insights = snapshotInsights(sel.Country, sel.Year, lines)
}

func fillTrend(vm *models.ViewModel, series []models.YearCount, s Settings) {
	sel := vm.Selection
	vm.Trend = series
	vm.Title = fmt.Sprintf("Trend of %s Deaths in %s (%d–%d)", sel.Disease, sel.Country, s.Years.Min, s.Years.Max)

	chart := &models.Chart{
		Kind:    models.ChartLine,
		Title:   vm.Title,
		XAxis:   "Year",
		YAxis:   sel.Disease,
		Markers: true,
		Points:  make([]models.ChartPoint, len(series)),
	}
	table := &models.Table{
		Title:   fmt.Sprintf("Data for %s in %s", sel.Disease, sel.Country),
		Columns: []string{"Year", sel.Disease},
		Rows:    make([][]string, len(series)),
	}
	for i, p := range series {
		year := strconv.Itoa(p.Year)
		chart.Points[i] = models.ChartPoint{Label: year, X: float64(p.Year), Value: float64(p.Deaths)}
		table.Rows[i] = []string{year, FormatDeaths(p.Deaths)}
	}
	vm.Chart = chart
	vm.Table = table

	first, last := series[0], series[len(series)-1]
	vm.Insights = trendInsights(sel.Disease, sel.Country, first.Deaths, last.Deaths, first.Year, last.Year)
}
