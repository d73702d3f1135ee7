package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/neonyanbbcode/MarketAnly/internal/session"
	"github.com/neonyanbbcode/MarketAnly/models"
)

// ExportHandler serializes the report and the chat transcript into plain
// files for local download.
type ExportHandler struct {
	Sessions *session.Store
}

func (h *ExportHandler) Register(g *echo.Group) {
	g.GET("/sessions/:id/transcript", h.transcript)
	g.GET("/sessions/:id/transcript/export", h.exportTranscript)
	g.POST("/export/report", h.exportReport)
}

func (h *ExportHandler) transcript(c echo.Context) error {
	sess, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	turns := sess.Transcript()
	if turns == nil {
		turns = []models.ConversationTurn{}
	}
	return c.JSON(http.StatusOK, TranscriptResponse{SessionID: sess.ID(), Turns: turns})
}

func (h *ExportHandler) exportTranscript(c echo.Context) error {
	sess, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	body := FormatTranscript(sess.Transcript())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="chat-transcript.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *ExportHandler) exportReport(c echo.Context) error {
	var req ReportExportRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.MarkdownReport) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "markdown_report required")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="market-analysis.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(req.MarkdownReport))
}

// FormatTranscript renders the export format: one block per turn,
// `[time] role:` then the text, closed by a dash rule.
func FormatTranscript(turns []models.ConversationTurn) string {
	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "[%s] %s:\n%s\n-------------------\n",
			turn.CreatedAt.Format("15:04:05"), turn.Role, turn.Text)
	}
	return b.String()
}
