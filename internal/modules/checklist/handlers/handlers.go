// Package handlers provides HTTP handlers for checklist entries.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradecraft/journal/internal/identity"
	"github.com/tradecraft/journal/internal/modules/checklist"
	"github.com/tradecraft/journal/internal/reportcache"
	"github.com/tradecraft/journal/internal/window"
)

// Handlers contains HTTP handlers for the checklist API
type Handlers struct {
	repo  *checklist.Repository
	cache *reportcache.Cache // nil disables report caching
	log   zerolog.Logger
	now   func() time.Time
}

// NewHandlers creates a new checklist handlers instance
func NewHandlers(repo *checklist.Repository, cache *reportcache.Cache, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("handler", "checklist").Logger(),
		now:   time.Now,
	}
}

// HandleCreate scores and stores a new readiness capture
// POST /api/checklists
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var entry checklist.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := identity.FromRequest(r)
	entry.Score = checklist.ScoreEntry(entry)

	created, err := h.repo.Create(userID, entry)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create checklist entry")
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(userID, reportcache.KindChecklist); err != nil {
			h.log.Warn().Err(err).Msg("Failed to invalidate cached checklist reports")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// HandleList returns recent checklist entries, newest first
// GET /api/checklists
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.repo.ListRecent(identity.FromRequest(r), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list checklist entries")
		http.Error(w, "Failed to list entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []checklist.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries)
}

// HandleTrends returns the windowed trend report
// GET /api/checklists/trends?days=N
func (h *Handlers) HandleTrends(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromRequest(r)
	now := h.now()
	start, days := window.Resolve(r.URL.Query().Get("days"), now)
	reportDate := now.UTC().Format(window.DateFormat)

	if h.cache != nil {
		var cached checklist.Trend
		hit, err := h.cache.Get(userID, reportcache.KindChecklist, days, reportDate, &cached)
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
		h.log.Error().Err(err).Msg("Failed to load checklist entries for trends")
		http.Error(w, "Failed to compute trends", http.StatusInternalServerError)
		return
	}

	trend := checklist.BuildTrend(entries, days)

	if h.cache != nil {
		if err := h.cache.Put(userID, reportcache.KindChecklist, days, reportDate, trend); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache checklist trend report")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(trend)
}
