package server

import (
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/labstack/echo/v4"

	"github.com/neonyanbbcode/MarketAnly/internal/logging"
)

const excerptRunes = 280

// CitationHandler fetches a grounding link target and extracts its readable
// content so the dashboard can show a source snippet next to the citation.
type CitationHandler struct {
	FetchTimeout time.Duration
}

func (h *CitationHandler) Register(g *echo.Group) {
	g.GET("/citations/preview", h.preview)
}

func (h *CitationHandler) preview(c echo.Context) error {
	raw := c.QueryParam("url")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "valid http(s) url required")
	}

	timeout := h.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	article, err := readability.FromURL(u.String(), timeout)
	if err != nil {
		logging.Log.WithError(err).Warnf("citation preview failed for %s", u.Host)
		return echo.NewHTTPError(http.StatusBadGateway, "could not fetch citation source")
	}

	return c.JSON(http.StatusOK, CitationPreviewResponse{
		URL:     u.String(),
		Title:   article.Title,
		Excerpt: truncateRunes(article.Excerpt, excerptRunes),
		Text:    truncateRunes(article.TextContent, 4000),
	})
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
