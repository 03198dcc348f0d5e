package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worawit/housing-loan-planner/internal/schedule"
)

func newTestHandler() http.Handler {
	return NewHandler(nil, 0, "1.2.3")
}

func TestHandleScheduleSuccess(t *testing.T) {
	body := `{
		"startDate": "2026-01",
		"scenario": {
			"name": "baseline",
			"principal": 300000,
			"termYears": 30,
			"interestRate": 6.0,
			"calculatePayment": true
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result schedule.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Schedule)
	assert.Equal(t, "baseline", result.Schedule.Name)
	assert.Len(t, result.Schedule.Records, 360)
	assert.Equal(t, "2026-01", result.Schedule.Records[0].Date)
	assert.Equal(t, 360, result.Summary.MonthsToPayoff)
	assert.InDelta(t, 1798.65, result.Schedule.Records[0].ScheduledPayment, 0.01)
}

func TestHandleScheduleDefaultsStartDate(t *testing.T) {
	body := `{
		"scenario": {
			"name": "undated",
			"principal": 100000,
			"termYears": 10,
			"interestRate": 3.0,
			"calculatePayment": true
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result schedule.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Schedule.Records)
	assert.NotEmpty(t, result.Schedule.Records[0].Date)
}

func TestHandleScheduleMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleScheduleMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "failed to decode request")
}

func TestHandleScheduleNonAmortizing(t *testing.T) {
	// Payment of 1000 equals the first month's interest at 12% on 100000.
	body := `{
		"startDate": "2026-01",
		"scenario": {
			"name": "underwater",
			"principal": 100000,
			"termYears": 10,
			"interestRate": 12.0,
			"monthlyPayment": 1000
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "does not cover interest")
}

func TestHandleScheduleInvalidConfiguration(t *testing.T) {
	body := `{
		"startDate": "2026-01",
		"scenario": {
			"name": "gapped",
			"principal": 100000,
			"termYears": 10,
			"monthlyPayment": 2000,
			"rateSchedule": [
				{"startYear": 1, "endYear": 2, "rate": 2.5},
				{"startYear": 4, "endYear": 10, "rate": 4.0}
			]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleCompareSuccess(t *testing.T) {
	body := `---
startDate: 2026-01
scenarios:
  - name: baseline
    active: true
    principal: 300000
    termYears: 30
    interestRate: 6.0
    calculatePayment: true
  - name: faster
    active: true
    principal: 300000
    termYears: 15
    interestRate: 6.0
    calculatePayment: true
`

	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"baseline", "faster"}, response.Scenarios)
	require.Len(t, response.Results, 2)
	assert.Less(t, response.Results[1].Summary.TotalInterest, response.Results[0].Summary.TotalInterest)
	assert.Contains(t, response.CSV, `"scenario","period","date"`)
	assert.Contains(t, response.CSV, "baseline")
	assert.NotEmpty(t, response.Duration)
}

func TestHandleCompareNoActiveScenarios(t *testing.T) {
	body := `---
startDate: 2026-01
scenarios:
  - name: shelved
    active: false
    principal: 100000
    termYears: 10
    interestRate: 3.0
    monthlyPayment: 2000
`

	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "no active scenarios")
}

func TestHandleCompareMalformedYAML(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader("scenarios: [unterminated"))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompareBodyTooLarge(t *testing.T) {
	handler := NewHandler(nil, 64, "test")

	body := "---\n# " + strings.Repeat("x", 1024) + "\nscenarios: []\n"
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "1.2.3", payload["version"])

	req = httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rec = httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
