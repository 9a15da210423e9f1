package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/leadrank/internal/errors"
	"github.com/stwalsh4118/leadrank/internal/services"
)

// LeadHandler handles requests about stored leads.
type LeadHandler struct {
	service services.LeadService
}

// NewLeadHandler creates a new LeadHandler instance.
func NewLeadHandler(service services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// LeadURI represents the path parameters of the lead endpoints.
type LeadURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Score handles GET /api/v1/leads/:id/score.
func (h *LeadHandler) Score(c *gin.Context) {
	var uri LeadURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.BindError(c, err, "Invalid lead id")
		return
	}

	eval, err := h.service.ScoreLead(c.Request.Context(), uri.ID)
	if err != nil {
		writeServiceError(c, err, "Failed to score lead")
		return
	}
	c.JSON(http.StatusOK, eval)
}

// Matches handles GET /api/v1/leads/:id/matches.
func (h *LeadHandler) Matches(c *gin.Context) {
	var uri LeadURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.BindError(c, err, "Invalid lead id")
		return
	}

	report, err := h.service.MatchLead(c.Request.Context(), uri.ID)
	if err != nil {
		writeServiceError(c, err, "Failed to match lead")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Dispatch handles POST /api/v1/leads/:id/dispatch. Publishing is
// asynchronous downstream, so success is 202.
func (h *LeadHandler) Dispatch(c *gin.Context) {
	var uri LeadURI
	if err := c.ShouldBindUri(&uri); err != nil {
		apierrors.BindError(c, err, "Invalid lead id")
		return
	}

	result, err := h.service.DispatchMatches(c.Request.Context(), uri.ID)
	if err != nil {
		writeServiceError(c, err, "Failed to dispatch matches")
		return
	}
	c.JSON(http.StatusAccepted, result)
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidLeadID):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrLeadNotFound):
		apierrors.NotFound(c, "Lead not found")
	case errors.Is(err, services.ErrInvestorsUnavailable):
		apierrors.ServiceUnavailable(c, "Investor list is unavailable", err)
	case errors.Is(err, services.ErrOutreachDisabled):
		apierrors.ServiceUnavailable(c, "Outreach is disabled", err)
	case errors.Is(err, services.ErrOutreachUnavailable):
		apierrors.ServiceUnavailable(c, "Outreach broker is unavailable", err)
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
