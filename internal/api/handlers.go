package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"deathreport/internal/engine"
	"deathreport/internal/models"
	"deathreport/internal/render"
	"deathreport/internal/report"
)

type Handler struct {
	table     atomic.Pointer[engine.Table]
	settings  report.Settings
	chartSize render.Size
}

// NewHandler accepts a nil table; requests are answered with 503 until
// SetData publishes one.
func NewHandler(t *engine.Table, settings report.Settings, chartSize render.Size) *Handler {
	h := &Handler{settings: settings, chartSize: chartSize}
	if t != nil {
		h.table.Store(t)
	}
	return h
}

func (h *Handler) SetData(t *engine.Table) {
	h.table.Store(t)
}

func (h *Handler) Ready() bool {
	return h.table.Load() != nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api", h.requireData)
	api.GET("/options", h.GetOptions)
	api.GET("/report", h.GetReport)
	api.GET("/snapshot", h.GetSnapshot)
	api.GET("/trend", h.GetTrend)
	api.GET("/chart.png", h.GetChart)
	api.GET("/export.arrow", h.GetExport)
}

func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.Ready() {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// selection reads the widget state from the query string. Missing values get
// the control defaults.
func (h *Handler) selection(c echo.Context, t *engine.Table, view models.ViewMode) (models.Selection, error) {
	sel := models.Selection{
		View:    view,
		Country: c.QueryParam("country"),
		Disease: c.QueryParam("disease"),
	}
	if view == "" {
		v, err := models.ParseViewMode(c.QueryParam("view"))
		if err != nil {
			return sel, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		sel.View = v
	}
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return sel, echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
		}
		sel.Year = year
	}
	return report.Complete(t, sel, h.settings), nil
}

func queryError(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownDisease):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, engine.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	}
	return err
}

func (h *Handler) Health(c echo.Context) error {
	status := "loading"
	if h.Ready() {
		status = "ready"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, report.Options(h.table.Load(), h.settings))
}

// GetReport returns the full view model. A selection without data is a 200
// with no_data set, so the page can show the message.
func (h *Handler) GetReport(c echo.Context) error {
	t := h.table.Load()
	sel, err := h.selection(c, t, "")
	if err != nil {
		return err
	}
	vm, err := report.Render(t, sel, h.settings)
	if err != nil {
		return queryError(err)
	}
	return c.JSON(http.StatusOK, vm)
}

func (h *Handler) GetSnapshot(c echo.Context) error {
	t := h.table.Load()
	sel, err := h.selection(c, t, models.ViewSnapshot)
	if err != nil {
		return err
	}
	counts, err := t.Snapshot(sel.Year, sel.Country)
	if err != nil {
		return queryError(err)
	}

	total := len(counts)
	limit, offset := getPaginationParams(c, total)
	if offset >= total {
		return c.JSON(http.StatusOK, []models.DiseaseCount{})
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"selection": sel,
		"data":      counts[offset:end],
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) GetTrend(c echo.Context) error {
	t := h.table.Load()
	sel, err := h.selection(c, t, models.ViewTrend)
	if err != nil {
		return err
	}
	series, err := t.Trend(sel.Disease, sel.Country)
	if err != nil {
		return queryError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"selection": sel,
		"data":      series,
	})
}

func (h *Handler) renderSelection(c echo.Context) (*models.ViewModel, error) {
	t := h.table.Load()
	sel, err := h.selection(c, t, "")
	if err != nil {
		return nil, err
	}
	vm, err := report.Render(t, sel, h.settings)
	if err != nil {
		return nil, queryError(err)
	}
	if vm.NoData {
		return nil, echo.NewHTTPError(http.StatusNotFound, vm.Message)
	}
	return vm, nil
}

func (h *Handler) GetChart(c echo.Context) error {
	vm, err := h.renderSelection(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.WriteChart(&buf, vm.Chart, h.chartSize); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) GetExport(c echo.Context) error {
	vm, err := h.renderSelection(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.WriteArrow(&buf, vm); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+render.Slug(vm.Title)+`.arrow"`)
	return c.Blob(http.StatusOK, "application/vnd.apache.arrow.stream", buf.Bytes())
}
