package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/neonyanbbcode/MarketAnly/internal/logging"
	"github.com/neonyanbbcode/MarketAnly/internal/session"
	"github.com/neonyanbbcode/MarketAnly/provider"
)

// chatFallbackMessage replaces the answer when the capability call fails.
// The transcript still advances; the error never reaches the caller.
const chatFallbackMessage = "Sorry, I couldn't process that question right now. Please try again."

// ChatHandler answers follow-up questions grounded on the live session.
type ChatHandler struct {
	Provider provider.Provider
	Sessions *session.Store
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message required")
	}

	// The most recently established session grounds the answer; before any
	// analysis has run a bare unseeded session is created on the spot.
	sess := h.Sessions.EnsureCurrent()

	reply, err := h.Provider.Chat(c.Request().Context(), sess.History(), req.Message)
	fallback := false
	if err != nil {
		logging.Log.WithError(err).Warn("chat turn failed, answering with fallback")
		reply = chatFallbackMessage
		fallback = true
		chatFallbacksTotal.Inc()
	}
	chatTurnsTotal.Inc()

	sess.AppendExchange(req.Message, reply)

	return c.JSON(http.StatusOK, ChatResponse{
		SessionID: sess.ID(),
		Reply:     reply,
		Fallback:  fallback,
	})
}
