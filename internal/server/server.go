package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neonyanbbcode/MarketAnly/config"
	"github.com/neonyanbbcode/MarketAnly/internal/logging"
	"github.com/neonyanbbcode/MarketAnly/internal/session"
	"github.com/neonyanbbcode/MarketAnly/provider/gemini"
)

// Run wires the pipeline together and serves the HTTP API.
func Run(cfg *config.Config) error {
	prov, err := gemini.FromConfig(cfg.Gemini)
	if err != nil {
		return err
	}
	sessions := session.NewStore()

	e := newEcho()

	api := e.Group("/api")

	ah := &AnalysisHandler{Provider: prov, Sessions: sessions}
	ah.Register(api)

	ch := &ChatHandler{Provider: prov, Sessions: sessions}
	ch.Register(api)

	eh := &ExportHandler{Sessions: sessions}
	eh.Register(api)

	mh := &MailHandler{Delay: cfg.Mail.SimulatedDelay}
	mh.Register(api)

	cph := &CitationHandler{FetchTimeout: cfg.Gemini.Timeout}
	cph.Register(api)

	logging.Log.Infof("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// newEcho builds the echo instance with the shared middleware: recovery,
// CORS for the browser dashboard, a unified JSON error handler, health and
// metrics endpoints.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		logging.Log.Errorf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
