package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-savings/internal/api/models"
	"solar-savings/internal/config"
	"solar-savings/internal/data"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const energyHeader = "time,consumption,pv,grid_import,grid_export,battery_charge,battery_discharge,soc\n"

// writeFixtures creates one hour of matching energy and price data.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var energy strings.Builder
	energy.WriteString(energyHeader)
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&energy, "2025-06-01T00:%02d:00Z,500,200,300,0,0,0,50\n", i*10)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inverter_data.csv"),
		[]byte(energy.String()), 0o644))

	prices := "valid_from,valid_to,purchase_price,sell_price\n" +
		"2025-06-01T00:00:00Z,2025-06-01T01:00:00Z,2.0,0.3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prices_data.csv"),
		[]byte(prices), 0o644))
	return dir
}

func newTestRouter(cfg *config.Config) (*gin.Engine, *AnalysisHandler) {
	h := NewAnalysisHandler(cfg, data.NewLoadCache())
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/analysis", h.RunAnalysis)
	v1.GET("/analysis/:id", h.GetAnalysis)
	v1.GET("/analysis/:id/summary.csv", h.GetSummaryCSV)
	v1.GET("/analysis/:id/profile", h.GetProfile)
	return r, h
}

func postAnalysis(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRunAnalysis(t *testing.T) {
	dir := writeFixtures(t)
	r, _ := newTestRouter(config.Default())

	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir, IncludeProfile: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "DKK", resp.Currency)
	assert.Equal(t, 6, resp.Overall.SampleCount)
	// 6 samples of 500 Wh consumption at 10-minute cadence.
	assert.InDelta(t, 0.5, resp.Overall.TotalConsumptionKWh, 1e-9)
	require.Len(t, resp.Monthly, 1)
	assert.Equal(t, "2025-06", resp.Monthly[0].Month)
	assert.Len(t, resp.Profile, 24)
}

func TestRunAnalysis_StoredResultRetrievable(t *testing.T) {
	dir := writeFixtures(t)
	r, _ := newTestRouter(config.Default())

	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir})
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/"+resp.ID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var again models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &again))
	assert.Equal(t, resp.ID, again.ID)
	assert.Equal(t, resp.Overall.TotalSavings, again.Overall.TotalSavings)
}

func TestRunAnalysis_SummaryCSVDownload(t *testing.T) {
	dir := writeFixtures(t)
	r, _ := newTestRouter(config.Default())

	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir})
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/"+resp.ID+"/summary.csv", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "text/csv", w2.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w2.Body.String(), "month,"))
	assert.Contains(t, w2.Body.String(), "2025-06")
}

func TestRunAnalysis_UnknownID(t *testing.T) {
	r, _ := newTestRouter(config.Default())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)
}

func TestRunAnalysis_NoFiles(t *testing.T) {
	r, _ := newTestRouter(config.Default())
	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: t.TempDir()})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EMPTY_INPUT", decodeError(t, w).Error.Code)
}

func TestRunAnalysis_MissingPrices(t *testing.T) {
	dir := writeFixtures(t)
	// Second hour of samples with no covering price interval.
	extra := energyHeader +
		"2025-06-01T01:00:00Z,500,0,500,0,0,0,50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inverter_data_2.csv"),
		[]byte(extra), 0o644))

	r, _ := newTestRouter(config.Default())
	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	e := decodeError(t, w)
	assert.Equal(t, "MISSING_PRICE", e.Error.Code)
	assert.Len(t, e.Error.Details["timestamps"], 1)
}

func TestRunAnalysis_StrictPolicyRejectsBadRows(t *testing.T) {
	dir := writeFixtures(t)
	bad := energyHeader + "garbage,500,0,500,0,0,0,50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inverter_data_2.csv"),
		[]byte(bad), 0o644))

	r, _ := newTestRouter(config.Default())
	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "PARSE_ERROR", decodeError(t, w).Error.Code)
}

func TestRunAnalysis_BestEffortSkipsBadRows(t *testing.T) {
	dir := writeFixtures(t)
	bad := energyHeader + "garbage,500,0,500,0,0,0,50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inverter_data_2.csv"),
		[]byte(bad), 0o644))

	r, _ := newTestRouter(config.Default())
	w := postAnalysis(t, r, models.AnalysisRequest{DataDir: dir, ParsePolicy: "best-effort"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Overall.SampleCount)
	require.Len(t, resp.ParseIssues, 1)
	assert.Equal(t, "inverter_data_2.csv", resp.ParseIssues[0].File)
}

func TestRunAnalysis_DateRange(t *testing.T) {
	dir := writeFixtures(t)
	r, _ := newTestRouter(config.Default())

	w := postAnalysis(t, r, models.AnalysisRequest{
		DataDir: dir,
		From:    "2025-06-01",
		To:      "2025-06-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A range before the data yields an empty-input error.
	w = postAnalysis(t, r, models.AnalysisRequest{
		DataDir: dir,
		From:    "2024-01-01",
		To:      "2024-01-31",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EMPTY_INPUT", decodeError(t, w).Error.Code)
}

func TestRunAnalysis_InvalidOverrides(t *testing.T) {
	r, _ := newTestRouter(config.Default())

	w := postAnalysis(t, r, models.AnalysisRequest{SampleInterval: "sometimes"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)

	w = postAnalysis(t, r, models.AnalysisRequest{From: "01/06/2025"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)
}
