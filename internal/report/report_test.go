package report

import (
	"reflect"
	"strings"
	"testing"

	"deathreport/internal/engine"
	"deathreport/internal/models"
)

func testTable() *engine.Table {
	diseases := []string{"Malaria", "Cardiovascular Diseases", "Road Injuries", "Tuberculosis", "Meningitis", "Drowning"}
	return engine.NewTable(diseases, []engine.Row{
		{Country: "Nigeria", Abbreviation: "NGA", Year: 1990, Deaths: []int64{1000, 40, 30, 20, 10, 5}},
		{Country: "Nigeria", Abbreviation: "NGA", Year: 1991, Deaths: []int64{1100, 45, 31, 21, 11, 6}},
		{Country: "Nigeria", Abbreviation: "NGA", Year: 1995, Deaths: []int64{1200, 50, 32, 22, 12, 7}},
		{Country: "France", Abbreviation: "FRA", Year: 2000, Deaths: []int64{0, 60, 10, 5, 1, 2}},
		{Country: "Brazil", Abbreviation: "BRA", Year: 2000, Deaths: []int64{3, 40, 20, 7, 2, 4}},
	})
}

func TestOptions(t *testing.T) {
	opts := Options(testTable(), DefaultSettings())
	if want := []string{"Global", "Brazil", "France", "Nigeria"}; !reflect.DeepEqual(opts.Countries, want) {
		t.Errorf("Countries: expected %v, got %v", want, opts.Countries)
	}
	if opts.Diseases[0] != "Malaria" || len(opts.Diseases) != 6 {
		t.Errorf("Diseases: got %v", opts.Diseases)
	}
	if opts.Years != (models.YearRange{Min: 1990, Max: 2019, Default: 2000}) {
		t.Errorf("Years: got %+v", opts.Years)
	}
	if len(opts.Views) != 2 || opts.Views[0].Value != models.ViewSnapshot {
		t.Errorf("Views: got %+v", opts.Views)
	}
}

func TestComplete(t *testing.T) {
	table := testTable()
	s := DefaultSettings()

	got := Complete(table, models.Selection{}, s)
	want := models.Selection{View: models.ViewSnapshot, Country: "Global", Year: 2000}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	got = Complete(table, models.Selection{View: models.ViewTrend, Year: 1995}, s)
	want = models.Selection{View: models.ViewTrend, Country: "Global", Disease: "Malaria"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRenderRoutesSnapshot(t *testing.T) {
	sel := models.Selection{View: models.ViewSnapshot, Country: "Global", Year: 2000}
	vm, err := Render(testTable(), sel, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if vm.Selection != sel {
		t.Errorf("selection not passed through: %+v", vm.Selection)
	}
	if vm.NoData || vm.Trend != nil {
		t.Fatalf("unexpected view model: %+v", vm)
	}
	if vm.Title != "Causes of Death in Global (2000)" {
		t.Errorf("Title: got %q", vm.Title)
	}
	// Cardio 100, Road 30, TB 12, Drowning 6, Malaria 3, Meningitis 3
	if vm.Snapshot[0] != (models.DiseaseCount{Disease: "Cardiovascular Diseases", Deaths: 100}) {
		t.Errorf("Snapshot[0]: got %+v", vm.Snapshot[0])
	}
	if len(vm.Top) != 5 || vm.Top[4].Disease != "Malaria" {
		t.Errorf("Top: got %+v", vm.Top)
	}
	if vm.Chart.Kind != models.ChartBar || len(vm.Chart.Points) != 6 {
		t.Errorf("Chart: got %+v", vm.Chart)
	}
	if vm.Table.Title != "Top 5 Causes of Death" || len(vm.Table.Rows) != 5 {
		t.Errorf("Table: got %+v", vm.Table)
	}
	if vm.Table.Rows[0][1] != "100" {
		t.Errorf("Table row 0: got %v", vm.Table.Rows[0])
	}
	if !strings.Contains(vm.Insights, "Key Insights for Global in 2000") {
		t.Errorf("Insights: got %q", vm.Insights)
	}
}

func TestRenderRoutesTrend(t *testing.T) {
	sel := models.Selection{View: models.ViewTrend, Country: "Nigeria", Disease: "Malaria"}
	vm, err := Render(testTable(), sel, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	want := []models.YearCount{{Year: 1990, Deaths: 1000}, {Year: 1991, Deaths: 1100}, {Year: 1995, Deaths: 1200}}
	if !reflect.DeepEqual(vm.Trend, want) {
		t.Errorf("Trend: expected %v, got %v", want, vm.Trend)
	}
	if vm.Snapshot != nil {
		t.Error("snapshot populated in trend view")
	}
	if vm.Chart.Kind != models.ChartLine || !vm.Chart.Markers {
		t.Errorf("Chart: got %+v", vm.Chart)
	}
	if vm.Chart.Points[2].X != 1995 {
		t.Errorf("Chart X: got %v", vm.Chart.Points[2].X)
	}
	if vm.Table.Title != "Data for Malaria in Nigeria" {
		t.Errorf("Table title: got %q", vm.Table.Title)
	}
	if vm.Table.Rows[2][1] != "1,200" {
		t.Errorf("Table row: got %v", vm.Table.Rows[2])
	}
	if !strings.Contains(vm.Insights, "up 20.0%") {
		t.Errorf("Insights: got %q", vm.Insights)
	}
}

func TestRenderNoData(t *testing.T) {
	cases := []models.Selection{
		{View: models.ViewSnapshot, Country: "Atlantis", Year: 2025},
		{View: models.ViewTrend, Country: "Atlantis", Disease: "Malaria"},
	}
	for _, sel := range cases {
		vm, err := Render(testTable(), sel, DefaultSettings())
		if err != nil {
			t.Fatalf("%+v: %v", sel, err)
		}
		if !vm.NoData || !strings.HasPrefix(vm.Message, "No data for") {
			t.Errorf("%+v: expected no-data message, got %+v", sel, vm)
		}
		if vm.Chart != nil || vm.Table != nil {
			t.Errorf("%+v: chart or table set on no-data view", sel)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(testTable(), models.Selection{View: models.ViewTrend, Country: "Global", Disease: "Boredom"}, DefaultSettings())
	if err == nil {
		t.Error("expected error for unknown disease")
	}
	_, err = Render(testTable(), models.Selection{View: "pie", Country: "Global"}, DefaultSettings())
	if err == nil {
		t.Error("expected error for unknown view mode")
	}
}

func TestFormatDeaths(t *testing.T) {
	if got := FormatDeaths(1234567); got != "1,234,567" {
		t.Errorf("got %q", got)
	}
	if got := FormatDeaths(0); got != "0" {
		t.Errorf("got %q", got)
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) Markdown(text string) error {
	line, _, _ := strings.Cut(text, "\n")
	r.calls = append(r.calls, "md:"+line)
	return nil
}

func (r *recorder) BarChart(labels []string, values []float64, title string) error {
	r.calls = append(r.calls, "bar:"+title)
	return nil
}

func (r *recorder) LineChart(xs, ys []float64, title string, markers bool) error {
	r.calls = append(r.calls, "line:"+title)
	return nil
}

func (r *recorder) Table(title string, columns []string, rows [][]string) error {
	r.calls = append(r.calls, "table:"+title)
	return nil
}

func TestPresentOrder(t *testing.T) {
	vm, err := Render(testTable(), models.Selection{View: models.ViewTrend, Country: "Nigeria", Disease: "Malaria"}, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{}
	if err := Present(vm, r); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"md:# Global Causes of Death (1990–2019)",
		"md:### Overview",
		"line:Trend of Malaria Deaths in Nigeria (1990–2019)",
		"md:### Trend Analysis: Malaria in Nigeria",
		"table:Data for Malaria in Nigeria",
		"md:---",
	}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("expected %v, got %v", want, r.calls)
	}
}

func TestPresentNoData(t *testing.T) {
	vm, err := Render(testTable(), models.Selection{View: models.ViewSnapshot, Country: "Atlantis", Year: 2025}, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{}
	if err := Present(vm, r); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 4 || r.calls[2] != "md:> **No data for Atlantis in 2025.**" {
		t.Errorf("unexpected calls %v", r.calls)
	}
}
