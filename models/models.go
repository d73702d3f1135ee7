package models

import "time"

// Trend classifies the direction of a sector inside a visualization snapshot.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// ImagePayload is one uploaded chart image: raw bytes plus the declared
// media type (e.g. image/png).
type ImagePayload struct {
	Data     []byte
	MIMEType string
}

// AnalysisRequest is the multimodal payload sent for one analysis run.
// Immutable once built: the ordered images followed by a single fixed
// instruction text part.
type AnalysisRequest struct {
	Images      []ImagePayload
	Instruction string
}

// KeySector is one sector entry of a visualization snapshot.
type KeySector struct {
	Name  string  `json:"name"`
	Trend Trend   `json:"trend"`
	Value float64 `json:"value"`
}

// VisualizationData is the structured snapshot embedded by the model at the
// end of its report. Field names match the wire format of the fenced block.
type VisualizationData struct {
	SentimentScore  float64     `json:"sentimentScore"`
	VolatilityIndex float64     `json:"volatilityIndex"`
	MarketPhase     string      `json:"marketPhase"`
	KeySectors      []KeySector `json:"keySectors"`
}

// GroundingLink is a web citation the model attached to substantiate claims
// made through its search augmentation.
type GroundingLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnalysisResult is what one completed analysis run produces.
type AnalysisResult struct {
	MarkdownReport string             `json:"markdown_report"`
	Visualization  *VisualizationData `json:"visualization"`
	GroundingLinks []GroundingLink    `json:"grounding_links"`
}

// HistoryTurn is one turn of the grounding history replayed to the model on
// follow-up questions. The first pair of a session carries the analysis
// request (images included) and the raw response.
type HistoryTurn struct {
	Role   string
	Images []ImagePayload
	Text   string
}

// History roles follow the wire naming of the external capability; the
// transcript uses the user-facing "assistant" label instead of "model".
const (
	RoleUser      = "user"
	RoleModel     = "model"
	RoleAssistant = "assistant"
)

// ConversationTurn is one visible entry of the chat transcript.
type ConversationTurn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
