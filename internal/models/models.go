package models

import (
	"fmt"
	"strings"
)

// GlobalCountry selects the aggregate over every country in the table.
const GlobalCountry = "Global"

type ViewMode string

const (
	ViewSnapshot ViewMode = "snapshot"
	ViewTrend    ViewMode = "trend"
)

// ParseViewMode accepts the short names plus the labels shown on the radio
// control ("Snapshot (Single Year)", "Trend (Multi-Year)").
func ParseViewMode(s string) (ViewMode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "" || strings.HasPrefix(v, "snapshot"):
		return ViewSnapshot, nil
	case strings.HasPrefix(v, "trend"):
		return ViewTrend, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// Label is the radio-button caption for the mode.
func (m ViewMode) Label() string {
	switch m {
	case ViewSnapshot:
		return "Snapshot (Single Year)"
	case ViewTrend:
		return "Trend (Multi-Year)"
	}
	return string(m)
}

// Selection is the current widget state. Year is read in snapshot mode only,
// Disease in trend mode only.
type Selection struct {
	View    ViewMode `json:"view"`
	Country string   `json:"country"`
	Year    int      `json:"year,omitempty"`
	Disease string   `json:"disease,omitempty"`
}

type DiseaseCount struct {
	Disease string `json:"disease"`
	Deaths  int64  `json:"deaths"`
}

type YearCount struct {
	Year   int   `json:"year"`
	Deaths int64 `json:"deaths"`
}

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

type ChartPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

type Chart struct {
	Kind    ChartKind    `json:"kind"`
	Title   string       `json:"title"`
	XAxis   string       `json:"x_axis"`
	YAxis   string       `json:"y_axis"`
	Markers bool         `json:"markers,omitempty"`
	Points  []ChartPoint `json:"points"`
}

type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ViewModel is everything a presentation shell needs for one render pass.
// When NoData is set, Chart and Table are nil and Message explains why.
type ViewModel struct {
	Selection  Selection `json:"selection"`
	PageTitle  string    `json:"page_title"`
	Overview   string    `json:"overview"`
	Title      string    `json:"title"`
	Chart      *Chart    `json:"chart,omitempty"`
	Insights   string    `json:"insights,omitempty"`
	Table      *Table    `json:"table,omitempty"`
	Conclusion string    `json:"conclusion"`

	NoData  bool   `json:"no_data"`
	Message string `json:"message,omitempty"`

	Snapshot []DiseaseCount `json:"snapshot,omitempty"`
	Top      []DiseaseCount `json:"top,omitempty"`
	Trend    []YearCount    `json:"trend,omitempty"`
}

type YearRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// Options lists the choices offered by each selection control.
type Options struct {
	Views     []ViewOption `json:"views"`
	Countries []string     `json:"countries"`
	Diseases  []string     `json:"diseases"`
	Years     YearRange    `json:"years"`
}

type ViewOption struct {
	Value ViewMode `json:"value"`
	Label string   `json:"label"`
}
