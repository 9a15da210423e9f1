package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/engine"
	apierrors "github.com/stwalsh4118/leadrank/internal/errors"
	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/matching"
	"github.com/stwalsh4118/leadrank/internal/metrics"
	"github.com/stwalsh4118/leadrank/internal/middleware"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/parcel"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// EngineHandler exposes the stateless engine operations. Nothing it serves
// touches the database.
type EngineHandler struct {
	engine *engine.Engine
}

// NewEngineHandler creates a new EngineHandler instance.
func NewEngineHandler(e *engine.Engine) *EngineHandler {
	return &EngineHandler{engine: e}
}

// ParseRequest represents the query parameters for the parse endpoint.
type ParseRequest struct {
	Key string `form:"key" binding:"required,max=2048"`
}

// ParseResponse carries the canonical key and its fields.
type ParseResponse struct {
	Canonical string           `json:"canonical"`
	Parcel    parcel.ParcelKey `json:"parcel"`
}

// ClassifyRequest represents the body of the classify endpoint.
type ClassifyRequest struct {
	Address   string `json:"address" binding:"required,max=1024"`
	ParcelKey string `json:"parcel_key" binding:"max=2048"`
}

// ClassifyResponse is a classification plus the jurisdiction check.
type ClassifyResponse struct {
	classify.Classification
	InJurisdiction bool `json:"in_jurisdiction"`
}

// ScoreRequest represents the body of the score endpoint.
type ScoreRequest struct {
	Property models.Property `json:"property"`
	Contact  models.Contact  `json:"contact"`
	Lead     models.Lead     `json:"lead"`
}

// ScoreResponse is a lead score with the property's follow-up priority.
type ScoreResponse struct {
	Score    scoring.LeadScore `json:"score"`
	Priority models.Priority   `json:"priority"`
}

// MatchRequest represents the body of the match endpoint.
type MatchRequest struct {
	Property  models.Property   `json:"property"`
	Contact   models.Contact    `json:"contact"`
	Lead      models.Lead       `json:"lead"`
	Investors []models.Investor `json:"investors" binding:"max=5000"`
}

// MatchResponse carries everything derived for one property and investor list.
type MatchResponse struct {
	Classification classify.Classification `json:"classification"`
	Score          scoring.LeadScore       `json:"score"`
	Priority       models.Priority         `json:"priority"`
	Matches        []matching.MatchResult  `json:"matches"`
	Summary        matching.Summary        `json:"summary"`
}

// Parse handles GET /api/v1/parcels/parse.
// Text without a recognisable key is a 422, not a 400: the request is valid.
func (h *EngineHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}

	key, ok := h.engine.ParseParcelKey(req.Key)
	if !ok {
		apierrors.Unprocessable(c, "No parcel key found in input", map[string]interface{}{
			"key": req.Key,
		})
		return
	}

	c.JSON(http.StatusOK, ParseResponse{Canonical: key.String(), Parcel: key})
}

// Classify handles POST /api/v1/classify.
func (h *EngineHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid request body")
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		Classification: h.engine.ClassifyProperty(req.Address, req.ParcelKey),
		InJurisdiction: h.engine.ValidateAddress(req.Address),
	})
}

// Score handles POST /api/v1/score.
func (h *EngineHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid request body")
		return
	}

	score := h.engine.ScoreLead(req.Property, req.Contact, req.Lead)
	metrics.RecordScore(score.Total)

	c.JSON(http.StatusOK, ScoreResponse{
		Score:    score,
		Priority: h.engine.Priority(req.Property),
	})
}

// Match handles POST /api/v1/match.
func (h *EngineHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid request body")
		return
	}

	p := req.Property
	cls := h.engine.ClassifyProperty(p.Address, p.ParcelText())
	score := h.engine.ScoreLead(p, req.Contact, req.Lead)
	results := h.engine.MatchInvestors(p, cls, score, req.Investors)
	summary := matching.Summarize(results)

	metrics.RecordScore(score.Total)
	metrics.RecordVerdicts(summary.TotalMatches, len(results)-summary.TotalMatches)

	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Matched inline investors", logger.Fields{
			"investors": len(req.Investors),
			"accepted":  summary.TotalMatches,
		})
	}

	c.JSON(http.StatusOK, MatchResponse{
		Classification: cls,
		Score:          score,
		Priority:       h.engine.Priority(p),
		Matches:        results,
		Summary:        summary,
	})
}
