package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/turbodog111/parliament/internal/campaign"
	"github.com/turbodog111/parliament/internal/config"
	"github.com/turbodog111/parliament/internal/constituency"
	"github.com/turbodog111/parliament/internal/engine"
	"github.com/turbodog111/parliament/internal/entropy"
	"github.com/turbodog111/parliament/internal/narrative"
	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

var testCatalog = constituency.Generate(99)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	w, err := state.New(politics.Lab, "Test PM")
	if err != nil {
		t.Fatalf("state.New: %v", err)
	}
	rng := entropy.NewSeeded(1)
	eng := engine.New(config.Default(), testCatalog, rng)
	return &Server{
		World:     w,
		Eng:       eng,
		Campaign:  campaign.New(eng, rng),
		Narrative: narrative.NewService(nil, rng),
		AdminKey:  "test-key",
	}
}

func adminPost(path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer test-key")
	return r
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["player_party"] != "lab" {
		t.Errorf("player_party = %v", body["player_party"])
	}
	if body["phase"] != "governing" {
		t.Errorf("phase = %v", body["phase"])
	}
}

func TestPollingEndpointOrdered(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.handlePolling(rec, httptest.NewRequest(http.MethodGet, "/api/v1/polling", nil))

	var entries []struct {
		Party string  `json:"party"`
		Share float64 `json:"share"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no polling entries")
	}
	if entries[0].Party != string(politics.PartyOrder[0]) {
		t.Errorf("first entry = %s, want canonical order", entries[0].Party)
	}
}

func TestAdminAuthRequired(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleAdvance)

	// No token.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	// Wrong token.
	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	handler(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}

	// GET is not a control verb.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/advance", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rec.Code)
	}
}

func TestAdminDisabledWithoutKey(t *testing.T) {
	s := newTestServer(t)
	s.AdminKey = ""
	handler := s.adminOnly(s.handleAdvance)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAdvanceEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.adminOnly(s.handleAdvance)(rec, adminPost("/api/v1/advance", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if s.World.Turn != 1 {
		t.Errorf("turn = %d, want 1", s.World.Turn)
	}
}

func TestAdvanceBlockedByPendingEvent(t *testing.T) {
	s := newTestServer(t)
	s.pendingEvent = &narrative.Event{Title: "Pending"}

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleAdvance)(rec, adminPost("/api/v1/advance", ""))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 while an event is pending", rec.Code)
	}
}

func TestEventChoiceEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.pendingEvent = &narrative.Event{
		Title: "Test Event",
		Choices: []narrative.Choice{
			{Label: "a", Effects: state.EffectDelta{Approval: 3}},
			{Label: "b"},
		},
	}

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleEventChoice)(rec, adminPost("/api/v1/event/choose", `{"choice":0}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if s.pendingEvent != nil {
		t.Error("the pending event was not cleared")
	}
	if len(s.World.EventLog) != 1 {
		t.Error("the decision was not logged")
	}

	// No event pending now.
	rec = httptest.NewRecorder()
	s.adminOnly(s.handleEventChoice)(rec, adminPost("/api/v1/event/choose", `{"choice":0}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 with nothing pending", rec.Code)
	}
}

func TestCallElectionTooSoonMapsToConflict(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleCallElection)(rec, adminPost("/api/v1/call-election", ""))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for a premature election", rec.Code)
	}
}

func TestElectionFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.World.TurnsInParliament = 30

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleCallElection)(rec, adminPost("/api/v1/call-election", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("call-election: %d: %s", rec.Code, rec.Body.String())
	}
	if s.World.Phase != state.PhaseCampaign {
		t.Fatalf("phase = %s, want campaign", s.World.Phase)
	}

	rec = httptest.NewRecorder()
	s.adminOnly(s.handleRunElection)(rec, adminPost("/api/v1/run-election", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("run-election: %d: %s", rec.Code, rec.Body.String())
	}
	if s.World.Phase != state.PhaseGoverning {
		t.Errorf("phase = %s, want governing after the count", s.World.Phase)
	}
	if s.World.ElectionCount != 1 {
		t.Errorf("election count = %d, want 1", s.World.ElectionCount)
	}
}

func TestProposeBillAndVote(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleProposeBill)(rec, adminPost("/api/v1/propose-bill",
		`{"title":"Test Bill","summary":"A measure.","ideology":{"nhs":30}}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("propose: %d: %s", rec.Code, rec.Body.String())
	}

	var bill state.Bill
	if err := json.Unmarshal(rec.Body.Bytes(), &bill); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if bill.ID == "" {
		t.Fatal("no bill ID returned")
	}

	rec = httptest.NewRecorder()
	s.adminOnly(s.handleVote)(rec, adminPost("/api/v1/vote/"+bill.ID, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("vote: %d: %s", rec.Code, rec.Body.String())
	}
	if len(s.World.Bills) != 0 || len(s.World.BillHistory) != 1 {
		t.Errorf("active/history = %d/%d, want 0/1", len(s.World.Bills), len(s.World.BillHistory))
	}

	// Voting again on a resolved bill 404s.
	rec = httptest.NewRecorder()
	s.adminOnly(s.handleVote)(rec, adminPost("/api/v1/vote/"+bill.ID, ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("re-vote: %d, want 404", rec.Code)
	}
}

func TestProposeBillRequiresTitleOrTopic(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.adminOnly(s.handleProposeBill)(rec, adminPost("/api/v1/propose-bill", `{}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCampaignActionOverHTTP(t *testing.T) {
	s := newTestServer(t)

	// Spending actions are campaign-phase business: while parliament
	// sits they are a rule violation.
	rec := httptest.NewRecorder()
	s.adminOnly(s.handleCampaign)(rec, adminPost("/api/v1/campaign/target", `{"region":"London"}`))
	if rec.Code != http.StatusConflict {
		t.Fatalf("governing-phase target: %d, want 409", rec.Code)
	}
	if s.World.PartyFunds != 500 {
		t.Fatalf("funds = %d, want 500 after a rejected action", s.World.PartyFunds)
	}

	s.World.Phase = state.PhaseCampaign

	rec = httptest.NewRecorder()
	s.adminOnly(s.handleCampaign)(rec, adminPost("/api/v1/campaign/target", `{"region":"London"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("target: %d: %s", rec.Code, rec.Body.String())
	}
	if s.World.PartyFunds != 450 {
		t.Errorf("funds = %d, want 450 after targeting", s.World.PartyFunds)
	}

	// A GB party in Northern Ireland is a rule violation, not a bad request.
	rec = httptest.NewRecorder()
	s.adminOnly(s.handleCampaign)(rec, adminPost("/api/v1/campaign/target", `{"region":"Northern Ireland"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("locked region: %d, want 409", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.adminOnly(s.handleCampaign)(rec, adminPost("/api/v1/campaign/bribe", `{"region":"London"}`))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown action: %d, want 404", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected inside the budget", i)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request allowed past the budget")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("a different client shares the budget")
	}
	if rl.RetryAfter("1.2.3.4") <= 0 {
		t.Error("no retry-after for a limited client")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:9999"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Errorf("clientIP = %q, want 10.0.0.1", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("forwarded clientIP = %q, want 203.0.113.7", got)
	}
}
