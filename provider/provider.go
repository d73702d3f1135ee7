package provider

import (
	"context"

	"github.com/neonyanbbcode/MarketAnly/models"
)

// Outcome is what one analysis call against the external capability yields:
// the raw response text (possibly empty), the usable grounding citations,
// and the request/response pair that seeds a fresh session history.
type Outcome struct {
	RawText        string
	GroundingLinks []models.GroundingLink
	Seed           []models.HistoryTurn
}

// Provider is the external generative capability. One entry point for the
// search-grounded multimodal analysis, one for follow-up chat over an
// existing history. Both are single attempts: no retry, no backoff;
// transport and service errors propagate to the caller.
type Provider interface {
	AnalyzeCharts(ctx context.Context, req models.AnalysisRequest) (*Outcome, error)
	Chat(ctx context.Context, history []models.HistoryTurn, question string) (string, error)
}
