// Package api provides the HTTP API for the running game.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (the player's control plane).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/turbodog111/parliament/internal/campaign"
	"github.com/turbodog111/parliament/internal/engine"
	"github.com/turbodog111/parliament/internal/narrative"
	"github.com/turbodog111/parliament/internal/persistence"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// Server serves the game state over HTTP. All mutating handlers take the
// world lock; the world has a single writer at a time.
type Server struct {
	World     *state.World
	Eng       *engine.Engine
	Campaign  *campaign.Manager
	Narrative *narrative.Service
	DB        *persistence.DB
	Port      int
	AdminKey  string // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.Mutex

	// The event awaiting a player decision, if any.
	pendingEvent *narrative.Event
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Generation-consuming endpoints get their own budget.
	genLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/polling", s.handlePolling)
	mux.HandleFunc("/api/v1/seats", s.handleSeats)
	mux.HandleFunc("/api/v1/parties", s.handleParties)
	mux.HandleFunc("/api/v1/bills", s.handleBills)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/elections", s.handleElections)
	mux.HandleFunc("/api/v1/constituencies", s.handleConstituencies)
	mux.HandleFunc("/api/v1/projection", s.handleProjection)
	mux.HandleFunc("/api/v1/news", RateLimitMiddleware(genLimiter, s.handleNews))
	mux.HandleFunc("/api/v1/analysis/", RateLimitMiddleware(genLimiter, s.handleAnalysis))
	mux.HandleFunc("/api/v1/saves", s.handleSaves)

	// Control plane endpoints.
	mux.HandleFunc("/api/v1/advance", s.adminOnly(s.handleAdvance))
	mux.HandleFunc("/api/v1/event/choose", s.adminOnly(s.handleEventChoice))
	mux.HandleFunc("/api/v1/call-election", s.adminOnly(s.handleCallElection))
	mux.HandleFunc("/api/v1/run-election", s.adminOnly(s.handleRunElection))
	mux.HandleFunc("/api/v1/propose-bill", s.adminOnly(s.handleProposeBill))
	mux.HandleFunc("/api/v1/vote/", s.adminOnly(s.handleVote))
	mux.HandleFunc("/api/v1/pmqs", s.adminOnly(s.handlePMQs))
	mux.HandleFunc("/api/v1/campaign/", s.adminOnly(s.handleCampaign))
	mux.HandleFunc("/api/v1/save", s.adminOnly(s.handleSave))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "control endpoints disabled (no PARLIAMENT_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs := s.World
	status := map[string]any{
		"game_id":             gs.GameID,
		"player_party":        gs.PlayerParty,
		"player_name":         gs.PlayerName,
		"phase":               gs.Phase,
		"turn":                gs.Turn,
		"date":                state.Date(gs.Turn),
		"turns_in_parliament": gs.TurnsInParliament,
		"election_count":      gs.ElectionCount,
		"approval":            gs.Approval,
		"approval_trend":      gs.ApprovalTrend,
		"unity":               gs.Unity,
		"party_funds":         gs.PartyFunds,
		"activists":           gs.Activists,
		"pm_party":            gs.PMParty,
		"opposition_leader":   gs.OppositionLeader,
		"in_government":       gs.IsInGovernment,
		"election_due":        s.Eng.IsElectionDue(gs),
		"can_call_election":   s.Eng.CanCallElection(gs),
		"active_bills":        len(gs.Bills),
		"pending_event":       s.pendingEvent,
		"narrative_enabled":   s.Narrative.Enabled(),
	}
	writeJSON(w, status)
}

func (s *Server) handlePolling(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		Party politics.PartyID `json:"party"`
		Name  string           `json:"name"`
		Share float64          `json:"share"`
	}
	var out []entry
	for _, p := range politics.PartyOrder {
		if share, ok := s.World.Polling[p]; ok {
			name := string(p)
			if party := politics.ByID(p); party != nil {
				name = party.Name
			}
			out = append(out, entry{Party: p, Name: name, Share: share})
		}
	}
	if share, ok := s.World.Polling[politics.Other]; ok {
		out = append(out, entry{Party: politics.Other, Name: "Others", Share: share})
	}
	writeJSON(w, out)
}

func (s *Server) handleSeats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gov := engine.DetermineGovernment(s.World.Seats)
	writeJSON(w, map[string]any{
		"seats":              s.World.Seats,
		"total":              politics.TotalSeats,
		"pm_party":           gov.PMParty,
		"has_majority":       gov.HasMajority,
		"hung_parliament":    gov.HungParliament,
		"effective_majority": gov.EffectiveMajority,
		"ranked":             gov.Ranked,
	})
}

func (s *Server) handleParties(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		ID          politics.PartyID  `json:"id"`
		Name        string            `json:"name"`
		Short       string            `json:"short"`
		Leader      string            `json:"leader"`
		Description string            `json:"description"`
		Ideology    politics.Ideology `json:"ideology"`
	}
	var out []entry
	for _, id := range politics.PartyOrder {
		p := politics.ByID(id)
		if p == nil {
			continue
		}
		out = append(out, entry{
			ID: p.ID, Name: p.Name, Short: p.Short, Leader: p.Leader,
			Description: p.Description, Ideology: p.Ideology,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]any{
		"active":  s.World.Bills,
		"history": s.World.BillHistory,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	log := s.World.EventLog
	if len(log) > limit {
		log = log[len(log)-limit:]
	}
	writeJSON(w, log)
}

func (s *Server) handleElections(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.World.ElectionHistory)
}

func (s *Server) handleConstituencies(w http.ResponseWriter, r *http.Request) {
	catalog := s.Eng.Catalog()
	region := r.URL.Query().Get("region")
	if v := r.URL.Query().Get("marginals"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "marginals must be a positive integer", http.StatusBadRequest)
			return
		}
		if region == "" {
			http.Error(w, "marginals requires a region", http.StatusBadRequest)
			return
		}
		writeJSON(w, catalog.Marginals(region, n))
		return
	}
	if region != "" {
		writeJSON(w, catalog.Region(region))
		return
	}
	writeJSON(w, catalog.All())
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := s.Campaign.Projection(s.World)
	gov := engine.DetermineGovernment(outcome.Seats)
	writeJSON(w, map[string]any{
		"seats":           outcome.Seats,
		"pm_party":        gov.PMParty,
		"has_majority":    gov.HasMajority,
		"hung_parliament": gov.HungParliament,
		"marginals":       outcome.Constituencies[:min(20, len(outcome.Constituencies))],
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	headlines := s.Narrative.Headlines(r.Context(), s.World)
	s.World.NewsLog = append(s.World.NewsLog, headlines...)
	writeJSON(w, headlines)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	billID := strings.TrimPrefix(r.URL.Path, "/api/v1/analysis/")
	if billID == "" {
		http.Error(w, "bill id required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bill := s.World.ActiveBill(billID)
	if bill == nil {
		http.Error(w, "no active bill with that id", http.StatusNotFound)
		return
	}
	projected := s.Eng.CalculateBillVote(s.World, bill)
	writeJSON(w, s.Narrative.VoteAnalysis(r.Context(), s.World, bill, projected))
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, []persistence.SlotInfo{})
		return
	}
	slots, err := s.DB.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, slots)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingEvent != nil {
		http.Error(w, "an event is awaiting a decision", http.StatusConflict)
		return
	}

	report, err := s.Eng.AdvanceTurn(s.World)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	ev := s.Narrative.MaybeEvent(r.Context(), s.World)
	s.pendingEvent = ev

	writeJSON(w, map[string]any{
		"turn":  report.Turn,
		"date":  report.Date,
		"event": ev,
	})
}

func (s *Server) handleEventChoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingEvent == nil {
		http.Error(w, "no event awaiting a decision", http.StatusConflict)
		return
	}
	record := narrative.ResolveEvent(s.World, s.pendingEvent, req.Choice)
	s.pendingEvent = nil
	writeJSON(w, record)
}

func (s *Server) handleCallElection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.Eng.IsElectionDue(s.World) {
		err = s.Eng.DissolveParliament(s.World)
	} else {
		err = s.Eng.CallElection(s.World)
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"phase": s.World.Phase,
		"date":  state.Date(s.World.Turn),
	})
}

func (s *Server) handleRunElection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.Eng.RunElection(s.World)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleProposeBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string            `json:"title"`
		Summary  string            `json:"summary"`
		Topic    string            `json:"topic"`
		Ideology politics.Ideology `json:"ideology"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A topic without a title asks the drafter to write the bill.
	if req.Title == "" && req.Topic != "" {
		draft := s.Narrative.BillDraft(r.Context(), s.World, req.Topic)
		req.Title = draft.Title
		req.Summary = draft.Summary
		if req.Ideology == nil {
			req.Ideology = draft.Ideology
		}
	}
	if req.Title == "" {
		http.Error(w, "title or topic required", http.StatusBadRequest)
		return
	}

	bill, err := s.Eng.CreateBill(s.World, req.Title, req.Summary, req.Ideology)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, bill)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	billID := strings.TrimPrefix(r.URL.Path, "/api/v1/vote/")
	if billID == "" {
		http.Error(w, "bill id required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bill := s.World.ActiveBill(billID)
	if bill == nil {
		http.Error(w, "no active bill with that id", http.StatusNotFound)
		return
	}

	result := s.Eng.CalculateBillVote(s.World, bill)
	if err := s.Eng.AdvanceBillStage(s.World, bill, result); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"bill":   bill,
		"result": result,
	})
}

func (s *Server) handlePMQs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Strategy engine.PMQStrategy `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Eng.RunPMQs(s.World, req.Strategy)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleCampaign dispatches POST /api/v1/campaign/{action} with body
// {"region": "..."} or {"axis": "...", "value": N} for policy shifts.
func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/v1/campaign/")

	var req struct {
		Region string        `json:"region"`
		Axis   politics.Axis `json:"axis"`
		Value  float64       `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		success = true
		err     error
	)
	switch action {
	case "target":
		err = s.Campaign.TargetRegion(s.World, req.Region)
	case "rally":
		success, err = s.Campaign.HoldRally(s.World, req.Region)
	case "doorknock":
		err = s.Campaign.Doorknock(s.World, req.Region)
	case "ad":
		success, err = s.Campaign.RunAd(s.World, req.Region)
	case "policy":
		err = s.Campaign.ShiftPolicy(s.World, req.Axis, req.Value)
	default:
		http.Error(w, "unknown campaign action", http.StatusNotFound)
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"action":      action,
		"success":     success,
		"party_funds": s.World.PartyFunds,
		"activists":   s.World.Activists,
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Slot int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.DB.Save(req.Slot, s.World); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"saved": req.Slot})
}

// writeEngineError maps known rule violations onto 409 and everything else
// onto 400.
func writeEngineError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch {
	case isRuleError(err):
		code = http.StatusConflict
	}
	http.Error(w, err.Error(), code)
}

func isRuleError(err error) bool {
	for _, rule := range []error{
		engine.ErrWrongPhase,
		engine.ErrElectionOverdue,
		engine.ErrElectionTooSoon,
		engine.ErrNotInGovernment,
		engine.ErrBillNotActive,
		campaign.ErrInsufficientFunds,
		campaign.ErrInsufficientActivists,
		campaign.ErrAlreadyTargeted,
		campaign.ErrRegionLocked,
	} {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
