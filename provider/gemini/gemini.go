package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neonyanbbcode/MarketAnly/config"
	"github.com/neonyanbbcode/MarketAnly/internal/analysis"
	"github.com/neonyanbbcode/MarketAnly/models"
	"github.com/neonyanbbcode/MarketAnly/provider"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a thin wrapper around the Gemini generateContent REST API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ provider.Provider = (*Client)(nil)

// NewClient constructs a Gemini client. The API key is mandatory; its
// absence fails here, before any request is attempted.
func NewClient(apiKey, model string, timeout time.Duration, opts ...func(*Client)) (*Client, error) {
	if apiKey == "" {
		return nil, config.ErrMissingAPIKey
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithBaseURL overrides the API base URL (useful for tests).
func WithBaseURL(url string) func(*Client) {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// FromConfig builds a client from service configuration.
func FromConfig(cfg config.GeminiConfig) (*Client, error) {
	return NewClient(cfg.APIKey, cfg.Model, cfg.Timeout, WithBaseURL(cfg.BaseURL))
}

// Wire types for the generateContent endpoint.

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
	Tools             []tool    `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webSource `json:"web,omitempty"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// AnalyzeCharts runs one search-grounded multimodal analysis. The returned
// outcome seeds a fresh session history with exactly this request and this
// raw response as the first turn pair.
func (c *Client) AnalyzeCharts(ctx context.Context, req models.AnalysisRequest) (*provider.Outcome, error) {
	if len(req.Images) == 0 {
		return nil, analysis.ErrNoImages
	}

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: analysis.SystemPersona}}},
		Contents:          []content{userContent(req.Images, req.Instruction)},
		Tools:             []tool{{GoogleSearch: &struct{}{}}},
	}

	resp, err := c.generate(ctx, body)
	if err != nil {
		return nil, err
	}

	text, links := extractCandidate(resp)
	return &provider.Outcome{
		RawText:        text,
		GroundingLinks: links,
		Seed: []models.HistoryTurn{
			{Role: models.RoleUser, Images: req.Images, Text: req.Instruction},
			{Role: models.RoleModel, Text: text},
		},
	}, nil
}

// Chat answers one follow-up question grounded on the replayed session
// history. Search augmentation is not enabled for follow-ups.
func (c *Client) Chat(ctx context.Context, history []models.HistoryTurn, question string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, userContent(turn.Images, turn.Text).withRole(turn.Role))
	}
	contents = append(contents, content{Role: models.RoleUser, Parts: []part{{Text: question}}})

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: analysis.SystemPersona}}},
		Contents:          contents,
	}

	resp, err := c.generate(ctx, body)
	if err != nil {
		return "", err
	}
	text, _ := extractCandidate(resp)
	return text, nil
}

func (co content) withRole(role string) content {
	co.Role = role
	return co
}

func userContent(images []models.ImagePayload, text string) content {
	parts := make([]part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: img.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}
	if text != "" {
		parts = append(parts, part{Text: text})
	}
	return content{Role: models.RoleUser, Parts: parts}
}

func (c *Client) generate(ctx context.Context, body generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
			return nil, fmt.Errorf("gemini: api error %d: %s", httpResp.StatusCode, envelope.Error.Message)
		}
		return nil, fmt.Errorf("gemini: api error %d: %s", httpResp.StatusCode, string(data))
	}

	var resp generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	return &resp, nil
}

// extractCandidate flattens the first candidate into text and filters its
// grounding chunks down to citations carrying both a title and a URL,
// preserving order. No candidates means an empty response, not an error.
func extractCandidate(resp *generateResponse) (string, []models.GroundingLink) {
	if len(resp.Candidates) == 0 {
		return "", nil
	}
	cand := resp.Candidates[0]

	var text string
	for _, p := range cand.Content.Parts {
		text += p.Text
	}

	var links []models.GroundingLink
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.Title == "" || chunk.Web.URI == "" {
				continue
			}
			links = append(links, models.GroundingLink{Title: chunk.Web.Title, URL: chunk.Web.URI})
		}
	}
	return text, links
}
