package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trading-assistant/internal/advisor"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/tokenomics"
)

func TestGetTokenomicsOrderedMetrics(t *testing.T) {
	analyzer := &stubAnalyzer{}
	narrator := &stubNarrator{}
	r := newTestRouter(Deps{Assistant: &stubAssistant{}, Analyzer: analyzer, Narrator: narrator}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tokenomics/Bitcoin?amount=250&name=Ada", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if analyzer.coinID != "bitcoin" || analyzer.investment != 250 {
		t.Fatalf("unexpected analyzer call: %s %v", analyzer.coinID, analyzer.investment)
	}
	if narrator.user != "Ada" {
		t.Fatalf("expected narration for Ada, got %q", narrator.user)
	}

	var got TokenomicsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CoinID != "bitcoin" || got.TokenName != "Bitcoin" || got.Narrative != "Bitcoin is digital gold." {
		t.Fatalf("unexpected response: %+v", got)
	}
	if len(got.Groups) == 0 {
		t.Fatal("expected metric groups")
	}
	entries := got.Metrics.Entries()
	if len(entries) == 0 || entries[0].Key != tokenomics.KeyTokenName {
		t.Fatalf("expected %s first, got %+v", tokenomics.KeyTokenName, entries)
	}
	body := w.Body.String()
	if strings.Index(body, `"`+tokenomics.KeyTokenName+`"`) > strings.Index(body, `"`+tokenomics.KeyRiskLevel+`"`) {
		t.Fatal("metrics must keep display order on the wire")
	}
}

func TestGetTokenomicsDefaultsAndErrors(t *testing.T) {
	analyzer := &stubAnalyzer{}
	r := newTestRouter(Deps{Assistant: &stubAssistant{}, Analyzer: analyzer}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tokenomics/ethereum", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if analyzer.investment != tokenomics.DefaultInvestment {
		t.Fatalf("expected default investment, got %v", analyzer.investment)
	}
	var got TokenomicsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Narrative != advisor.NarrativeUnavailable {
		t.Fatalf("expected unavailable narrative, got %q", got.Narrative)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tokenomics/ethereum?amount=-5", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad amount, got %d", w.Code)
	}

	statuses := map[error]int{
		fmt.Errorf("coin nope: %w", domain.ErrNotFound):  http.StatusNotFound,
		fmt.Errorf("breaker: %w", domain.ErrUnavailable): http.StatusServiceUnavailable,
		fmt.Errorf("coingecko API error 500"):            http.StatusBadGateway,
	}
	for err, want := range statuses {
		analyzer.err = err
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tokenomics/nope", nil))
		if w.Code != want {
			t.Errorf("%v: expected %d, got %d", err, want, w.Code)
		}
	}
}

func TestGetLatestAnalysis(t *testing.T) {
	r := newTestRouter(Deps{Assistant: &stubAssistant{}}, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/bitcoin", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without storage, got %d", w.Code)
	}

	summary := &repository.AnalysisSummary{ID: 3, CoinID: "bitcoin", RiskLevel: domain.RiskLevel2, Record: domain.NewMetricRecord()}
	r = newTestRouter(Deps{Assistant: &stubAssistant{}, Analyses: stubAnalyses{summary: summary}}, "")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/bitcoin", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"risk_level":2`) {
		t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
	}

	r = newTestRouter(Deps{Assistant: &stubAssistant{}, Analyses: stubAnalyses{err: domain.ErrNotFound}}, "")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyses/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestResolve(t *testing.T) {
	res := domain.Resolution{CoinID: "ethereum", Source: domain.ResolvedByAlias, Match: "eth"}
	r := newTestRouter(Deps{Assistant: &stubAssistant{}, Resolver: stubResolver{res: res}}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resolve?q=tokenomics+of+eth", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != res {
		t.Fatalf("unexpected resolution: %+v", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resolve", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", w.Code)
	}
}

func TestIntent(t *testing.T) {
	r := newTestRouter(Deps{Assistant: &stubAssistant{}}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/intent?q=tokenomics+of+solana+with+%24500", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got struct {
		Intent     string  `json:"intent"`
		Investment float64 `json:"investment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Intent != string(domain.IntentTokenomics) || got.Investment != 500 {
		t.Fatalf("unexpected intent: %+v", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/intent?q=", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
