package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// MailHandler is the simulated mail handoff: it builds a mailto link
// pre-filled with the report so the user's local mail client takes over.
// Nothing is transmitted; the artificial delay stands in for a real send.
type MailHandler struct {
	Delay time.Duration
}

func (h *MailHandler) Register(g *echo.Group) {
	g.POST("/mail", h.send)
}

func (h *MailHandler) send(c echo.Context) error {
	var req MailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mail request")
	}
	if !strings.Contains(req.To, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "valid recipient address required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "mail body required")
	}
	subject := req.Subject
	if subject == "" {
		subject = "Market Analysis Report"
	}

	time.Sleep(h.Delay)

	mailto := "mailto:" + req.To +
		"?subject=" + mailtoEscape(subject) +
		"&body=" + mailtoEscape(req.Body)

	return c.JSON(http.StatusOK, MailResponse{Mailto: mailto, Simulated: true})
}

// mailtoEscape percent-encodes for the mailto scheme; QueryEscape's '+'
// for spaces is not understood by mail clients.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
