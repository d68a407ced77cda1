package handlers

import (
	"net/http"
	"strconv"
	"time"

	"zerim-todo/internal/analytics"
	"zerim-todo/internal/api/response"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
)

// AnalyticsHandler serves the /api/analytics endpoint group. Every endpoint
// takes a store snapshot and runs the pure analytics functions over it.
type AnalyticsHandler struct {
	store   *store.MemoryStore
	maxDays int
	defDays int
	logger  logging.Logger
	now     func() time.Time
}

// NewAnalyticsHandler creates an analytics handler. defaultDays and maxDays
// bound the daily breakdown window.
func NewAnalyticsHandler(s *store.MemoryStore, defaultDays, maxDays int, logger logging.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:   s,
		defDays: defaultDays,
		maxDays: maxDays,
		logger:  logger.WithComponent("analytics"),
		now:     time.Now,
	}
}

// Summary handles GET /api/analytics.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot(r.Context())
	response.WriteJSON(w, http.StatusOK, analytics.Summarize(snap.Tasks, snap.Categories, h.now()))
}

// Daily handles GET /api/analytics/daily?days=N. days outside 1..maxDays is a
// validation error.
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	days := h.defDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.WriteValidationError(w, "days must be an integer")
			return
		}
		days = parsed
	}
	if days < 1 || days > h.maxDays {
		response.WriteValidationError(w, "days must be between 1 and "+strconv.Itoa(h.maxDays))
		return
	}

	snap := h.store.Snapshot(r.Context())
	response.WriteJSON(w, http.StatusOK, analytics.DailyBreakdown(snap.Tasks, h.now(), days))
}

// ProductivityScore handles GET /api/analytics/productivity-score.
func (h *AnalyticsHandler) ProductivityScore(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot(r.Context())
	response.WriteJSON(w, http.StatusOK, analytics.Productivity(snap.Tasks, snap.TimeEntries, h.now()))
}

// TimeDistribution handles GET /api/analytics/time-distribution.
func (h *AnalyticsHandler) TimeDistribution(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot(r.Context())
	response.WriteJSON(w, http.StatusOK, analytics.Distribution(snap.TimeEntries, snap.Tasks, snap.Categories))
}
