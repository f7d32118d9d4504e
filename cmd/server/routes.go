package main

import (
	"net/http"

	"softmatrices_site_go/config"
	"softmatrices_site_go/handlers"
	"softmatrices_site_go/middleware"
	"softmatrices_site_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// contactBodyLimit caps contact submissions; Web3Forms payloads are a few fields of text
const contactBodyLimit = "64K"

func newServer(cfg *config.Config, contact *handlers.ContactHandler, monitor *services.RelayMonitor, limiter *middleware.RateLimiter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public pages
	e.GET("/", handlers.LandingHandler, middleware.CSPNonce())
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/healthz", handlers.NewHealthHandler(monitor))
	e.GET("/api/site", handlers.GetSiteContentHandler)

	// Contact relay: every method reaches the handler so non-POST gets the relay's 405 body
	e.Any("/api/contact", contact.Submit,
		limiter.Middleware(),
		echomiddleware.BodyLimit(contactBodyLimit),
	)

	return e
}
