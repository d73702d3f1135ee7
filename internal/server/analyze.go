package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neonyanbbcode/MarketAnly/internal/analysis"
	"github.com/neonyanbbcode/MarketAnly/internal/logging"
	"github.com/neonyanbbcode/MarketAnly/internal/session"
	"github.com/neonyanbbcode/MarketAnly/models"
	"github.com/neonyanbbcode/MarketAnly/provider"
)

// AnalysisHandler runs the full pipeline for one analysis request:
// multipart intake, request construction, capability call, response parsing
// and session replacement.
type AnalysisHandler struct {
	Provider provider.Provider
	Sessions *session.Store
}

func (h *AnalysisHandler) Register(g *echo.Group) {
	g.POST("/analyze", h.analyze)
}

func (h *AnalysisHandler) analyze(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form with chart images required")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one chart image required")
	}

	images := make([]models.ImagePayload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		images = append(images, models.ImagePayload{Data: data, MIMEType: mime})
	}

	req, err := analysis.BuildAnalysisRequest(images)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.Provider.AnalyzeCharts(c.Request().Context(), req)
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		logging.Log.WithError(err).Error("analysis call failed")
		// Generic notice to the caller; prior UI state stays untouched on
		// the client because nothing below runs.
		return echo.NewHTTPError(http.StatusBadGateway, "analysis failed, please try again")
	}
	analysesTotal.WithLabelValues("ok").Inc()

	parsed := analysis.ParseAnalysisText(out.RawText)
	if parsed.Degraded {
		parseDegradedTotal.Inc()
	}

	sess := h.Sessions.Begin(out.Seed)

	links := out.GroundingLinks
	if links == nil {
		links = []models.GroundingLink{}
	}
	return c.JSON(http.StatusOK, AnalyzeResponse{
		SessionID:      sess.ID(),
		MarkdownReport: parsed.MarkdownReport,
		Visualization:  parsed.Visualization,
		GroundingLinks: links,
		ParseDegraded:  parsed.Degraded,
	})
}
