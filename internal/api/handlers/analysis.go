package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solar-savings/internal/api/middleware"
	"solar-savings/internal/api/models"
	"solar-savings/internal/config"
	"solar-savings/internal/data"
	"solar-savings/internal/savings"
)

// AnalysisHandler runs the savings pipeline and serves stored results.
type AnalysisHandler struct {
	cfg   *config.Config
	cache *data.LoadCache
	store *ResultStore
}

func NewAnalysisHandler(cfg *config.Config, cache *data.LoadCache) *AnalysisHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &AnalysisHandler{
		cfg:   cfg,
		cache: cache,
		store: NewResultStore(0),
	}
}

// RunAnalysis handles POST /api/v1/analysis.
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	cfg, loc, err := h.effectiveConfig(req)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	opts := savings.Options{
		SampleInterval: cfg.SampleInterval.Std(),
		Location:       loc,
	}
	if req.From != "" {
		from, err := time.ParseInLocation("2006-01-02", req.From, loc)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("from: %v", err), nil)
			return
		}
		opts.From = from
	}
	if req.To != "" {
		to, err := time.ParseInLocation("2006-01-02", req.To, loc)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("to: %v", err), nil)
			return
		}
		// Inclusive end date: bound at the start of the following day.
		opts.To = to.AddDate(0, 0, 1)
	}
	if !opts.From.IsZero() && !opts.To.IsZero() && opts.To.Before(opts.From) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "from must not be after to", nil)
		return
	}

	start := time.Now()
	snap, err := data.Load(data.Source{
		Dir:        cfg.DataDir,
		EnergyGlob: cfg.EnergyGlob,
		PricesGlob: cfg.PricesGlob,
		Location:   loc,
	}, h.cache)
	if err != nil {
		middleware.RecordAnalysis("error", time.Since(start))
		if errors.Is(err, data.ErrNoFiles) {
			writeError(c, http.StatusNotFound, "EMPTY_INPUT", err.Error(), nil)
			return
		}
		writeError(c, http.StatusBadRequest, "DATA_LOAD_ERROR", err.Error(), nil)
		return
	}

	if !snap.Report.Empty() && cfg.ParsePolicy == config.PolicyStrict {
		middleware.RecordAnalysis("error", time.Since(start))
		writeError(c, http.StatusUnprocessableEntity, "PARSE_ERROR",
			fmt.Sprintf("%d malformed rows in input files", len(snap.Report.Errors)),
			gin.H{"issues": models.FromParseReport(snap.Report)})
		return
	}

	result, err := savings.New().Run(snap.Samples, snap.Prices, opts)
	if err != nil {
		middleware.RecordAnalysis("error", time.Since(start))
		writePipelineError(c, err)
		return
	}
	middleware.RecordAnalysis("success", time.Since(start))

	stored := h.store.Put(result, snap.Report, cfg.Currency)
	c.JSON(http.StatusOK, h.buildResponse(stored, req.IncludeProfile))
}

// GetAnalysis handles GET /api/v1/analysis/:id.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	stored, ok := h.store.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no analysis with that id", nil)
		return
	}
	c.JSON(http.StatusOK, h.buildResponse(stored, true))
}

// GetSummaryCSV handles GET /api/v1/analysis/:id/summary.csv.
func (h *AnalysisHandler) GetSummaryCSV(c *gin.Context) {
	stored, ok := h.store.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no analysis with that id", nil)
		return
	}
	var buf bytes.Buffer
	if err := savings.WriteMonthlySummaryCSV(&buf, stored.Result.Monthly); err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="monthly_savings_summary.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// GetReportXLSX handles GET /api/v1/analysis/:id/report.xlsx.
func (h *AnalysisHandler) GetReportXLSX(c *gin.Context) {
	stored, ok := h.store.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no analysis with that id", nil)
		return
	}
	raw, err := savings.BuildReportXLSX(stored.Result.Overall, stored.Result.Monthly, stored.Currency)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="solar_savings_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", raw)
}

// GetReportPDF handles GET /api/v1/analysis/:id/report.pdf.
func (h *AnalysisHandler) GetReportPDF(c *gin.Context) {
	stored, ok := h.store.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no analysis with that id", nil)
		return
	}
	raw, err := savings.BuildReportPDF(stored.Result.Overall, stored.Result.Monthly, stored.Currency)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="solar_savings_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", raw)
}

// GetProfile handles GET /api/v1/analysis/:id/profile.
func (h *AnalysisHandler) GetProfile(c *gin.Context) {
	stored, ok := h.store.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "no analysis with that id", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": models.FromProfile(stored.Result.Profile)})
}

func (h *AnalysisHandler) buildResponse(stored *storedResult, includeProfile bool) models.AnalysisResponse {
	resp := models.AnalysisResponse{
		ID:          stored.ID,
		Status:      "ok",
		Currency:    stored.Currency,
		Overall:     models.FromOverall(stored.Result.Overall),
		Monthly:     models.FromMonthly(stored.Result.Monthly),
		ParseIssues: models.FromParseReport(stored.Report),
	}
	if includeProfile {
		resp.Profile = models.FromProfile(stored.Result.Profile)
	}
	return resp
}

// effectiveConfig overlays request fields onto the server configuration.
func (h *AnalysisHandler) effectiveConfig(req models.AnalysisRequest) (*config.Config, *time.Location, error) {
	cfg := *h.cfg
	if req.DataDir != "" {
		cfg.DataDir = req.DataDir
	}
	if req.EnergyGlob != "" {
		cfg.EnergyGlob = req.EnergyGlob
	}
	if req.PricesGlob != "" {
		cfg.PricesGlob = req.PricesGlob
	}
	if req.Timezone != "" {
		cfg.Timezone = req.Timezone
	}
	if req.ParsePolicy != "" {
		cfg.ParsePolicy = req.ParsePolicy
	}
	if req.SampleInterval != "" {
		d, err := time.ParseDuration(req.SampleInterval)
		if err != nil {
			return nil, nil, fmt.Errorf("sample_interval: %w", err)
		}
		cfg.SampleInterval = config.Duration(d)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	return &cfg, loc, nil
}

func writePipelineError(c *gin.Context, err error) {
	var missing *savings.MissingPriceError
	var integrity *savings.DataIntegrityError
	var empty *savings.EmptyInputError

	switch {
	case errors.As(err, &missing):
		stamps := make([]string, 0, len(missing.Timestamps))
		for _, t := range missing.Timestamps {
			stamps = append(stamps, t.Format(time.RFC3339))
		}
		writeError(c, http.StatusUnprocessableEntity, "MISSING_PRICE", err.Error(),
			gin.H{"timestamps": stamps})
	case errors.As(err, &integrity):
		writeError(c, http.StatusUnprocessableEntity, "DATA_INTEGRITY", err.Error(), nil)
	case errors.As(err, &empty):
		writeError(c, http.StatusNotFound, "EMPTY_INPUT", err.Error(), nil)
	default:
		writeError(c, http.StatusInternalServerError, "ANALYSIS_ERROR", err.Error(), nil)
	}
}

func writeError(c *gin.Context, status int, code, message string, details gin.H) {
	detail := models.ErrorDetail{Code: code, Message: message}
	if details != nil {
		detail.Details = details
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}
