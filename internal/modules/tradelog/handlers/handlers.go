// Package handlers provides HTTP handlers for the trade journal.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradecraft/journal/internal/identity"
	"github.com/tradecraft/journal/internal/modules/tradelog"
	"github.com/tradecraft/journal/internal/reportcache"
	"github.com/tradecraft/journal/internal/window"
)

// Handlers contains HTTP handlers for the trade log API
type Handlers struct {
	repo  *tradelog.Repository
	cache *reportcache.Cache // nil disables report caching
	log   zerolog.Logger
	now   func() time.Time
}

// NewHandlers creates a new trade log handlers instance
func NewHandlers(repo *tradelog.Repository, cache *reportcache.Cache, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("handler", "tradelog").Logger(),
		now:   time.Now,
	}
}

// HandleCreate derives, scores and stores a new trade
// POST /api/trades
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var entry tradelog.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := identity.FromRequest(r)
	entry = tradelog.ApplyDerived(entry)
	entry.JournalScore = tradelog.ScoreEntry(entry)

	created, err := h.repo.Create(userID, entry)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create trade entry")
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(userID, reportcache.KindTradeLog); err != nil {
			h.log.Warn().Err(err).Msg("Failed to invalidate cached trade reports")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleList returns recent trades, newest first
// GET /api/trades
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.repo.ListRecent(identity.FromRequest(r), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trade entries")
		http.Error(w, "Failed to list entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []tradelog.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

// HandleTrends returns the windowed trend report
// GET /api/trades/trends?days=N
func (h *Handlers) HandleTrends(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromRequest(r)
	now := h.now()
	start, days := window.Resolve(r.URL.Query().Get("days"), now)
	reportDate := now.UTC().Format(window.DateFormat)

	if h.cache != nil {
		var cached tradelog.Trend
		hit, err := h.cache.Get(userID, reportcache.KindTradeLog, days, reportDate, &cached)
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
		h.log.Error().Err(err).Msg("Failed to load trade entries for trends")
		http.Error(w, "Failed to compute trends", http.StatusInternalServerError)
		return
	}

	trend := tradelog.BuildTrend(entries, days)

	if h.cache != nil {
		if err := h.cache.Put(userID, reportcache.KindTradeLog, days, reportDate, trend); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache trade trend report")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trend)
}
