// Package engine is the single entry point to parcel parsing, classification,
// lead scoring and investor matching. An Engine holds only immutable
// configuration and is safe for concurrent use.
package engine

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/matching"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/parcel"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// Config bundles the tunables of every engine stage.
type Config struct {
	// Workers bounds the batch pool. Zero means one per CPU.
	Workers         int
	Scoring         scoring.Config
	Matching        matching.Config
	ClassifyOptions []classify.Option
}

// DefaultConfig returns production thresholds and weights.
func DefaultConfig() Config {
	return Config{
		Scoring:  scoring.DefaultConfig(),
		Matching: matching.DefaultConfig(),
	}
}

// Engine evaluates leads. Construct it with New.
type Engine struct {
	classifier *classify.Classifier
	scorer     *scoring.Scorer
	matcher    *matching.Matcher
	workers    int
}

// New builds an Engine. Later changes to cfg have no effect on it.
func New(cfg Config) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		classifier: classify.New(cfg.ClassifyOptions...),
		scorer:     scoring.New(cfg.Scoring),
		matcher:    matching.New(cfg.Matching),
		workers:    workers,
	}
}

// Default returns an Engine with DefaultConfig.
func Default() *Engine {
	return New(DefaultConfig())
}

// Workers reports the batch pool size.
func (e *Engine) Workers() int {
	return e.workers
}

// ParseParcelKey extracts a tax map key from free text.
func (e *Engine) ParseParcelKey(text string) (parcel.ParcelKey, bool) {
	return parcel.Parse(text)
}

// ClassifyProperty labels an address; parcelText may be empty.
func (e *Engine) ClassifyProperty(address, parcelText string) classify.Classification {
	return e.classifier.Classify(address, parcelText)
}

// ValidateAddress reports whether an address is plausibly in Hawaii.
func (e *Engine) ValidateAddress(address string) bool {
	return e.classifier.ValidateAddress(address)
}

// ScoreLead computes the lead score.
func (e *Engine) ScoreLead(p models.Property, c models.Contact, l models.Lead) scoring.LeadScore {
	return e.scorer.Score(p, c, l)
}

// MatchInvestors filters and ranks investors for a property.
func (e *Engine) MatchInvestors(p models.Property, cls classify.Classification, score scoring.LeadScore, investors []models.Investor) []matching.MatchResult {
	return e.matcher.Match(p, cls, score, investors)
}

// Priority recomputes the follow-up priority of a property.
func (e *Engine) Priority(p models.Property) models.Priority {
	return scoring.Priority(p)
}

// LeadInput is one unit of batch work.
type LeadInput struct {
	Property models.Property `json:"property"`
	Contact  models.Contact  `json:"contact"`
	Lead     models.Lead     `json:"lead"`
}

// ScoredLead is the batch result for one LeadInput.
type ScoredLead struct {
	LeadID         int64                   `json:"lead_id"`
	PropertyID     int64                   `json:"property_id"`
	Classification classify.Classification `json:"classification"`
	Score          scoring.LeadScore       `json:"score"`
	Priority       models.Priority         `json:"priority"`
}

// LeadMatches pairs a scored lead with its investor matches.
type LeadMatches struct {
	ScoredLead
	Matches []matching.MatchResult `json:"matches"`
}

// Evaluate classifies and scores one input.
func (e *Engine) Evaluate(in LeadInput) ScoredLead {
	cls := e.ClassifyProperty(in.Property.Address, in.Property.ParcelText())
	return ScoredLead{
		LeadID:         in.Lead.ID,
		PropertyID:     in.Property.ID,
		Classification: cls,
		Score:          e.ScoreLead(in.Property, in.Contact, in.Lead),
		Priority:       e.Priority(in.Property),
	}
}

// ScoreLeads evaluates inputs on the worker pool. Output i belongs to input i.
// When ctx is done no further inputs are started and the output is cut to
// the inputs that were.
func (e *Engine) ScoreLeads(ctx context.Context, inputs []LeadInput) []ScoredLead {
	out := make([]ScoredLead, len(inputs))

	p := pool.New().WithMaxGoroutines(e.workers)
	started := 0
	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		started++
		p.Go(func() {
			out[i] = e.Evaluate(in)
		})
	}
	p.Wait()
	return out[:started]
}

// MatchLeads scores inputs, then matches each against the shared investor
// list. Ordering and cancellation follow ScoreLeads.
func (e *Engine) MatchLeads(ctx context.Context, inputs []LeadInput, investors []models.Investor) []LeadMatches {
	scored := e.ScoreLeads(ctx, inputs)

	reqs := make([]matching.Request, len(scored))
	for i, s := range scored {
		reqs[i] = matching.Request{
			Property:       inputs[i].Property,
			Classification: s.Classification,
			Score:          s.Score,
		}
	}
	batches := e.matcher.MatchBatch(ctx, reqs, investors, e.workers)

	out := make([]LeadMatches, 0, len(scored))
	for i, matches := range batches {
		if matches == nil {
			break
		}
		out = append(out, LeadMatches{ScoredLead: scored[i], Matches: matches})
	}
	return out
}
