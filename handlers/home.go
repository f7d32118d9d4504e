package handlers

import (
	"bytes"
	"net/http"
	"time"

	"softmatrices_site_go/config"
	"softmatrices_site_go/middleware"
	"softmatrices_site_go/services"
	"softmatrices_site_go/templates"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the single-page marketing site
func LandingHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	page := templates.LandingPage{
		SEO:     GetLandingSEO(cfg.AppURL, cfg.Environment),
		Content: services.SiteContent(),
		Nonce:   middleware.GetNonce(c.Request().Context()),
		Year:    time.Now().Year(),
	}

	// Render into a buffer so a template error never sends a half page
	var buf bytes.Buffer
	if err := templates.RenderLanding(&buf, page); err != nil {
		c.Logger().Errorf("Failed to render landing page: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// GetSiteContentHandler returns the landing page content as JSON
func GetSiteContentHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.SiteContent())
}

// NewHealthHandler reports liveness, whether the relay has its access key, and
// the relay alerts raised since the process started. Alert messages stay in the
// logs and operator email since they can quote upstream responses.
func NewHealthHandler(monitor *services.RelayMonitor) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg := c.Get("config").(*config.Config)
		alerts := monitor.RecentAlerts()

		response := map[string]interface{}{
			"status":           "ok",
			"relay_configured": cfg.RelayConfigured(),
			"relay_alerts":     len(alerts),
		}
		if len(alerts) > 0 {
			response["last_relay_alert"] = map[string]interface{}{
				"kind": alerts[0].Kind,
				"at":   alerts[0].Timestamp.UTC().Format(time.RFC3339),
			}
		}
		return c.JSON(http.StatusOK, response)
	}
}
