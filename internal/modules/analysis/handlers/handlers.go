// Package handlers provides HTTP handlers for market analyses.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradecraft/journal/internal/identity"
	"github.com/tradecraft/journal/internal/modules/analysis"
	"github.com/tradecraft/journal/internal/reportcache"
	"github.com/tradecraft/journal/internal/window"
)

// Handlers contains HTTP handlers for the analysis API
type Handlers struct {
	repo  *analysis.Repository
	cache *reportcache.Cache // nil disables report caching
	log   zerolog.Logger
	now   func() time.Time
}

// NewHandlers creates a new analysis handlers instance
func NewHandlers(repo *analysis.Repository, cache *reportcache.Cache, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("handler", "analysis").Logger(),
		now:   time.Now,
	}
}

// HandleCreate scores and stores a new market analysis
// POST /api/analyses
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var entry analysis.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := identity.FromRequest(r)
	entry.AnalysisScore = analysis.ScoreEntry(entry)

	created, err := h.repo.Create(userID, entry)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create analysis entry")
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(userID, reportcache.KindAnalysis); err != nil {
			h.log.Warn().Err(err).Msg("Failed to invalidate cached analysis reports")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleList returns recent analyses, newest first
// GET /api/analyses
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.repo.ListRecent(identity.FromRequest(r), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list analysis entries")
		http.Error(w, "Failed to list entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []analysis.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

// HandleTrends returns the windowed trend report
// GET /api/analyses/trends?days=N
func (h *Handlers) HandleTrends(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromRequest(r)
	now := h.now()
	start, days := window.Resolve(r.URL.Query().Get("days"), now)
	reportDate := now.UTC().Format(window.DateFormat)

	if h.cache != nil {
		var cached analysis.Trend
		hit, err := h.cache.Get(userID, reportcache.KindAnalysis, days, reportDate, &cached)
		if err != nil {
			h.log.Warn().Err(err).Msg("Report cache lookup failed")
		} else if hit {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(cached)
			return
		}
	}

	entries, err := h.repo.ListSince(userID, start)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load analysis entries for trends")
		http.Error(w, "Failed to compute trends", http.StatusInternalServerError)
		return
	}

	trend := analysis.BuildTrend(entries, days)

	if h.cache != nil {
		if err := h.cache.Put(userID, reportcache.KindAnalysis, days, reportDate, trend); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache analysis trend report")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trend)
}
