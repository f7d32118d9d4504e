package handlers

import (
	"encoding/xml"
	"net/http"

	"softmatrices_site_go/config"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler generates the XML sitemap. The site is a single page; sections are anchors.
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []SitemapURL{
			{Loc: cfg.AppURL + "/", ChangeFreq: "monthly", Priority: 1.0},
		},
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// GetRobotsHandler serves robots.txt; the relay endpoint is not for crawlers
func GetRobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + cfg.AppURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
