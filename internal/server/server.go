// Package server exposes the amortization engine over HTTP for UI shells. It
// holds no state between requests; every request constructs fresh policies.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/worawit/housing-loan-planner/internal/config"
	"github.com/worawit/housing-loan-planner/internal/schedule"
	"github.com/worawit/housing-loan-planner/pkg/constants"
	"github.com/worawit/housing-loan-planner/pkg/loans"
	"github.com/worawit/housing-loan-planner/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the schedule API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single-scenario schedule computation (JSON body)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Multi-scenario comparison (YAML config body)
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type scheduleRequest struct {
	StartDate string          `json:"startDate"`
	Scenario  config.Scenario `json:"scenario"`
}

type compareResponse struct {
	Scenarios []string          `json:"scenarios"`
	Results   []schedule.Result `json:"results"`
	Warnings  []string          `json:"warnings,omitempty"`
	CSV       string            `json:"csv"`
	Duration  string            `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var request scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		return
	}

	startDate := request.StartDate
	if startDate == "" {
		startDate = time.Now().Format(config.DateTimeLayout)
	}

	scenario, err := request.Scenario.ToEngineScenario(startDate)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	engine := schedule.NewEngine(h.logger)
	computed, err := engine.Run(scenario)
	if err != nil {
		h.writeError(w, h.statusFor(err), err)
		return
	}
	summary, err := schedule.Summarize(computed)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, schedule.Result{Schedule: computed, Summary: summary})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(body, &conf); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse configuration: %w", err))
		return
	}
	if conf.StartDate == "" {
		conf.StartDate = time.Now().Format(config.DateTimeLayout)
	}

	warnings := conf.ValidateConfiguration()

	scenarios, err := conf.BuildScenarios()
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if len(scenarios) == 0 {
		h.writeError(w, http.StatusUnprocessableEntity, errors.New("configuration has no active scenarios"))
		return
	}

	engine := schedule.NewEngine(h.logger)
	results, err := engine.Compare(scenarios)
	if err != nil {
		h.writeError(w, h.statusFor(err), err)
		return
	}

	var csv bytes.Buffer
	output.CsvFormat(&csv, results)

	names := make([]string, len(results))
	for i, result := range results {
		names[i] = result.Schedule.Name
	}

	h.writeJSON(w, http.StatusOK, compareResponse{
		Scenarios: names,
		Results:   results,
		Warnings:  warnings,
		CSV:       csv.String(),
		Duration:  time.Since(start).String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// statusFor maps calculation errors to response codes: configuration and
// non-amortizing inputs are the caller's error, everything else is ours.
func (h *handler) statusFor(err error) int {
	var configuration *loans.ConfigurationError
	var nonAmortizing *schedule.NonAmortizingPaymentError
	if errors.As(err, &configuration) || errors.As(err, &nonAmortizing) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Warn("request failed",
		zap.String("op", "server.writeError"),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
