package matching

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/stwalsh4118/leadrank/internal/classify"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

// Request is one property to match against a shared investor list.
type Request struct {
	Property       models.Property
	Classification classify.Classification
	Score          scoring.LeadScore
}

// MatchBatch matches every request on a pool of at most workers goroutines.
// Output slot i belongs to reqs[i]. Once ctx is done no further requests are
// started and their slots stay nil.
func (m *Matcher) MatchBatch(ctx context.Context, reqs []Request, investors []models.Investor, workers int) [][]MatchResult {
	out := make([][]MatchResult, len(reqs))
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers)
	for i, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		p.Go(func() {
			out[i] = m.Match(req.Property, req.Classification, req.Score, investors)
		})
	}
	p.Wait()
	return out
}
