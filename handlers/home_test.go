package handlers

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"softmatrices_site_go/config"
	"softmatrices_site_go/middleware"
	"softmatrices_site_go/models"
	"softmatrices_site_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/", nil)

	handler := middleware.CSPNonce()(LandingHandler)
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Softmatrices")
	assert.Contains(t, body, `id="contact-form"`)
	assert.Contains(t, body, `action="/api/contact"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://softmatrices.com/">`)

	nonce := c.Get(string(middleware.NonceKey)).(string)
	assert.Contains(t, body, `nonce="`+nonce+`"`)
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), nonce)
}

func TestGetSiteContentHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/api/site", nil)

	require.NoError(t, GetSiteContentHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var content models.SiteContent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Equal(t, "Softmatrices", content.Brand)
	assert.Equal(t, "/api/contact", content.Contact.Endpoint)
	assert.NotEmpty(t, content.Services)
}

func TestHealthHandler(t *testing.T) {
	t.Run("NoAlerts", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/healthz", nil)
		c.Set("config", &config.Config{Web3FormsAccessKey: "SECRET123"})

		require.NoError(t, NewHealthHandler(services.NewRelayMonitor(&config.Config{}))(c))
		assert.JSONEq(t, `{"status":"ok","relay_configured":true,"relay_alerts":0}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "SECRET123")
	})

	t.Run("WithoutMonitor", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/healthz", nil)

		require.NoError(t, NewHealthHandler(nil)(c))
		assert.JSONEq(t, `{"status":"ok","relay_configured":false,"relay_alerts":0}`, rec.Body.String())
	})

	t.Run("AfterConfigurationAlert", func(t *testing.T) {
		cfg := &config.Config{}
		monitor := services.NewRelayMonitor(cfg)
		result := services.NewContactRelayFromConfig(cfg).Handle(context.Background(), http.MethodPost, []byte(`{"name":"A"}`))
		monitor.Observe(result)

		_, c, rec := setupEcho(http.MethodGet, "/healthz", nil)
		require.NoError(t, NewHealthHandler(monitor)(c))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(1), body["relay_alerts"])
		last := body["last_relay_alert"].(map[string]interface{})
		assert.Equal(t, "configuration_missing", last["kind"])
		assert.NotEmpty(t, last["at"])
	})
}

func TestGetSitemapHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, GetSitemapHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationXML))

	var urlSet SitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &urlSet))
	require.Len(t, urlSet.URLs, 1)
	assert.Equal(t, "https://softmatrices.com/", urlSet.URLs[0].Loc)
}

func TestGetRobotsHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)

	require.NoError(t, GetRobotsHandler(c))
	assert.Contains(t, rec.Body.String(), "Disallow: /api/")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://softmatrices.com/sitemap.xml")
}

func TestGetLandingSEO(t *testing.T) {
	seo := GetLandingSEO("https://softmatrices.com", "production")
	assert.Equal(t, "https://softmatrices.com/", seo.Canonical)
	assert.Equal(t, "index, follow", seo.Robots())
	assert.Equal(t, "website", seo.OGType())

	preview := GetLandingSEO("https://preview.softmatrices.com", "development")
	assert.Equal(t, "noindex, nofollow", preview.Robots())
}
