package server

import "github.com/neonyanbbcode/MarketAnly/models"

// AnalyzeResponse is the result of one analysis run.
type AnalyzeResponse struct {
	SessionID      string                    `json:"session_id"`
	MarkdownReport string                    `json:"markdown_report"`
	Visualization  *models.VisualizationData `json:"visualization"`
	GroundingLinks []models.GroundingLink    `json:"grounding_links"`
	// ParseDegraded is set when the response carried a structured block that
	// could not be decoded; the dashboard then knows its visualization panel
	// may be stale relative to the report.
	ParseDegraded bool `json:"parse_degraded"`
}

// ChatRequest is the request body for a follow-up question.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse carries the answer; Fallback marks the fixed apology text
// used when the capability call failed.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Fallback  bool   `json:"fallback"`
}

// TranscriptResponse is the visible conversation of a session.
type TranscriptResponse struct {
	SessionID string                    `json:"session_id"`
	Turns     []models.ConversationTurn `json:"turns"`
}

// ReportExportRequest is the body for report file export.
type ReportExportRequest struct {
	MarkdownReport string `json:"markdown_report"`
}

// MailRequest is the body for the simulated mail handoff.
type MailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// MailResponse is the handoff result. Simulated is always true: nothing is
// transmitted, the client opens the mailto link in the local mail client.
type MailResponse struct {
	Mailto    string `json:"mailto"`
	Simulated bool   `json:"simulated"`
}

// CitationPreviewResponse is the readable extraction of a grounding link.
type CitationPreviewResponse struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Text    string `json:"text"`
}
