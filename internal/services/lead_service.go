package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/engine"
	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/matching"
	"github.com/stwalsh4118/leadrank/internal/metrics"
	"github.com/stwalsh4118/leadrank/internal/middleware"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/outreach"
	"github.com/stwalsh4118/leadrank/internal/repository"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// DefaultInvestorLimit caps how many investors one match run loads.
const DefaultInvestorLimit = 1000

// Service-level errors
var (
	ErrInvalidLeadID        = errors.New("lead id must be positive")
	ErrLeadNotFound         = errors.New("lead not found")
	ErrInvestorsUnavailable = errors.New("investor list unavailable")
	ErrOutreachDisabled     = errors.New("outreach publishing is disabled")
	ErrOutreachUnavailable  = errors.New("outreach broker unavailable")
)

// LeadEvaluation is the stored lead plus everything the engine derives from it.
type LeadEvaluation struct {
	Lead           models.Lead             `json:"lead"`
	Property       models.Property         `json:"property"`
	Classification classify.Classification `json:"classification"`
	InJurisdiction bool                    `json:"in_jurisdiction"`
	Score          scoring.LeadScore       `json:"score"`
	Priority       models.Priority         `json:"priority"`
}

// LeadMatchReport adds investor matches to an evaluation.
type LeadMatchReport struct {
	LeadEvaluation
	Matches []matching.MatchResult `json:"matches"`
	Summary matching.Summary       `json:"summary"`
}

// DispatchResult reports what was handed to the outreach broker.
type DispatchResult struct {
	DispatchID string                 `json:"dispatch_id"`
	LeadID     int64                  `json:"lead_id"`
	Published  int                    `json:"published"`
	Matches    []matching.MatchResult `json:"matches"`
}

// LeadService defines the interface for stored-lead evaluation.
type LeadService interface {
	// ScoreLead loads a lead and scores it.
	// Returns ErrInvalidLeadID for ids below 1 and ErrLeadNotFound when absent.
	ScoreLead(ctx context.Context, id int64) (*LeadEvaluation, error)

	// MatchLead scores a lead and matches it against stored investors.
	// Returns ErrInvestorsUnavailable when investors cannot be loaded.
	MatchLead(ctx context.Context, id int64) (*LeadMatchReport, error)

	// DispatchMatches matches a lead and publishes one outreach message per
	// accepted investor. Returns ErrOutreachDisabled without a publisher and
	// ErrOutreachUnavailable when publishing fails.
	DispatchMatches(ctx context.Context, id int64) (*DispatchResult, error)
}

// LeadServiceDeps are the collaborators of LeadService. Publisher may be nil
// when outreach is disabled.
type LeadServiceDeps struct {
	Leads         repository.LeadRepository
	Investors     repository.InvestorRepository
	Engine        *engine.Engine
	Publisher     outreach.Publisher
	Logger        *logger.Logger
	InvestorLimit int
	Now           func() time.Time
}

type leadService struct {
	leads         repository.LeadRepository
	investors     repository.InvestorRepository
	engine        *engine.Engine
	publisher     outreach.Publisher
	log           *logger.Logger
	investorLimit int
	now           func() time.Time
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(deps LeadServiceDeps) LeadService {
	s := &leadService{
		leads:         deps.Leads,
		investors:     deps.Investors,
		engine:        deps.Engine,
		publisher:     deps.Publisher,
		log:           deps.Logger,
		investorLimit: deps.InvestorLimit,
		now:           deps.Now,
	}
	if s.engine == nil {
		s.engine = engine.Default()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.investorLimit <= 0 {
		s.investorLimit = DefaultInvestorLimit
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.WithComponent("lead_service")
	return s
}

func (s *leadService) ScoreLead(ctx context.Context, id int64) (*LeadEvaluation, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	eval := s.evaluate(rec)

	s.log.Info("Lead scored", logger.Fields{
		"lead_id":     id,
		"total_score": eval.Score.Total,
		"island":      eval.Classification.Island,
	})
	return eval, nil
}

func (s *leadService) MatchLead(ctx context.Context, id int64) (*LeadMatchReport, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	eval := s.evaluate(rec)

	investors, err := s.investors.List(ctx, s.investorLimit)
	if err != nil {
		s.log.Error("Failed to load investors", err, logger.Fields{"lead_id": id})
		return nil, fmt.Errorf("%w: %w", ErrInvestorsUnavailable, err)
	}
	if len(investors) == s.investorLimit {
		s.log.Warn("Investor list truncated", logger.Fields{"limit": s.investorLimit})
	}

	results := s.engine.MatchInvestors(rec.Property, eval.Classification, eval.Score, investors)
	summary := matching.Summarize(results)
	metrics.RecordVerdicts(summary.TotalMatches, len(results)-summary.TotalMatches)

	s.log.Info("Lead matched", logger.Fields{
		"lead_id":   id,
		"investors": len(investors),
		"accepted":  summary.TotalMatches,
	})

	return &LeadMatchReport{LeadEvaluation: *eval, Matches: results, Summary: summary}, nil
}

func (s *leadService) DispatchMatches(ctx context.Context, id int64) (*DispatchResult, error) {
	if s.publisher == nil {
		return nil, ErrOutreachDisabled
	}

	report, err := s.MatchLead(ctx, id)
	if err != nil {
		return nil, err
	}

	d := outreach.NewDispatch(id, report.Property.ID, report.Score.Total, report.Matches,
		middleware.RequestIDFromContext(ctx), s.now())

	if len(d.Messages) > 0 {
		err = s.publisher.Publish(ctx, d.Messages)
		metrics.RecordOutreach(err)
		if err != nil {
			s.log.Error("Failed to publish outreach", err, logger.Fields{
				"lead_id":     id,
				"dispatch_id": d.ID,
			})
			return nil, fmt.Errorf("%w: %w", ErrOutreachUnavailable, err)
		}
	}

	s.log.Info("Outreach dispatched", logger.Fields{
		"lead_id":     id,
		"dispatch_id": d.ID,
		"published":   len(d.Messages),
	})

	return &DispatchResult{
		DispatchID: d.ID,
		LeadID:     id,
		Published:  len(d.Messages),
		Matches:    report.Matches,
	}, nil
}

func (s *leadService) load(ctx context.Context, id int64) (*repository.LeadRecord, error) {
	if id < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLeadID, id)
	}

	rec, err := s.leads.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load lead", err, logger.Fields{"lead_id": id})
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}
	if rec == nil {
		s.log.Debug("Lead not found", logger.Fields{"lead_id": id})
		return nil, ErrLeadNotFound
	}
	return rec, nil
}

func (s *leadService) evaluate(rec *repository.LeadRecord) *LeadEvaluation {
	p := rec.Property
	score := s.engine.ScoreLead(p, rec.Contact, rec.Lead)
	metrics.RecordScore(score.Total)

	return &LeadEvaluation{
		Lead:           rec.Lead,
		Property:       p,
		Classification: s.engine.ClassifyProperty(p.Address, p.ParcelText()),
		InJurisdiction: s.engine.ValidateAddress(p.Address + " " + p.City),
		Score:          score,
		Priority:       s.engine.Priority(p),
	}
}
