package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"trading-assistant/internal/advisor"
	"trading-assistant/internal/domain"
	"trading-assistant/internal/intent"
	"trading-assistant/internal/tokenomics"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// TokenomicsResponse is the API shape of an analysis. Metrics keep the
// display order of the record.
type TokenomicsResponse struct {
	CoinID    string                `json:"coin_id"`
	TokenName string                `json:"token_name"`
	Metrics   *domain.MetricRecord  `json:"metrics"`
	Groups    []string              `json:"groups"`
	Risk      domain.RiskAssessment `json:"risk"`
	Narrative string                `json:"narrative"`
}

// GetTokenomics godoc
// @Summary      Tokenomics analysis
// @Description  Runs the full tokenomics and risk analysis for a CoinGecko coin id
// @Tags         tokenomics
// @Produce      json
// @Security     ApiKeyAuth
// @Param        coin    path   string  true   "CoinGecko coin id (e.g., bitcoin)"
// @Param        amount  query  number  false  "Hypothetical investment in USD"  default(1000)
// @Param        name    query  string  false  "Name used in the explanation"
// @Success      200  {object}  TokenomicsResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/tokenomics/{coin} [get]
func (h *Handler) GetTokenomics(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-tokenomics")
	defer span.End()

	coinID := strings.ToLower(strings.TrimSpace(c.Param("coin")))
	span.SetAttributes(attribute.String("coin.id", coinID))

	amount := tokenomics.DefaultInvestment
	if a := c.Query("amount"); a != "" {
		n, err := strconv.ParseFloat(a, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
			return
		}
		amount = n
	}

	report, err := h.Analyzer.Analyze(ctx, coinID, amount)
	if err != nil {
		span.RecordError(err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	narrative := advisor.NarrativeUnavailable
	if h.Narrator != nil {
		narrative = h.Narrator.Explain(ctx, report.Record, c.DefaultQuery("name", "there"))
	}

	c.JSON(http.StatusOK, TokenomicsResponse{
		CoinID:    report.CoinID,
		TokenName: report.TokenName(),
		Metrics:   report.Record,
		Groups:    report.Record.Groups(),
		Risk:      report.Risk,
		Narrative: narrative,
	})
}

// GetLatestAnalysis godoc
// @Summary      Latest logged analysis
// @Description  Returns the most recent stored tokenomics analysis for a coin
// @Tags         tokenomics
// @Produce      json
// @Security     ApiKeyAuth
// @Param        coin  path  string  true  "CoinGecko coin id"
// @Success      200  {object}  repository.AnalysisSummary
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/analyses/{coin} [get]
func (h *Handler) GetLatestAnalysis(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-latest-analysis")
	defer span.End()

	if h.Analyses == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis storage not configured"})
		return
	}
	coinID := strings.ToLower(strings.TrimSpace(c.Param("coin")))
	summary, err := h.Analyses.LatestAnalysis(ctx, coinID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Resolve godoc
// @Summary      Resolve a coin
// @Description  Maps free text to a CoinGecko coin id via aliases and fuzzy matching
// @Tags         tokenomics
// @Produce      json
// @Security     ApiKeyAuth
// @Param        q  query  string  true  "Free text (e.g., 'tokenomics of eth')"
// @Success      200  {object}  domain.Resolution
// @Failure      400  {object}  map[string]string
// @Router       /api/resolve [get]
func (h *Handler) Resolve(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.resolve")
	defer span.End()

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	res, err := h.Resolver.Resolve(ctx, q)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Intent godoc
// @Summary      Classify a message
// @Description  Returns the intent the assistant would route the message to
// @Tags         chat
// @Produce      json
// @Security     ApiKeyAuth
// @Param        q  query  string  true  "Message text"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/intent [get]
func (h *Handler) Intent(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	resp := gin.H{"intent": intent.Classify(q)}
	if amount, ok := intent.ExtractInvestmentAmount(q); ok {
		resp["investment"] = amount
	}
	c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
