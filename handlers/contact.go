package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"softmatrices_site_go/services"

	"github.com/labstack/echo/v4"
)

var readFailureBody = []byte(`{"success":false,"message":"Internal Server Error"}`)

// ContactHandler exposes the contact relay over HTTP
type ContactHandler struct {
	relay    *services.ContactRelay
	recorder *services.RelayEventRecorder
	monitor  *services.RelayMonitor
}

// NewContactHandler creates the handler. recorder and monitor may be nil.
func NewContactHandler(relay *services.ContactRelay, recorder *services.RelayEventRecorder, monitor *services.RelayMonitor) *ContactHandler {
	return &ContactHandler{
		relay:    relay,
		recorder: recorder,
		monitor:  monitor,
	}
}

// Submit relays a contact form submission to Web3Forms.
// It is registered for every method so non-POST requests get the relay's 405 body.
func (h *ContactHandler) Submit(c echo.Context) error {
	start := time.Now()
	req := c.Request()

	var body []byte
	if req.Method == http.MethodPost {
		var err error
		body, err = io.ReadAll(req.Body)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			// BodyLimit reports oversized chunked bodies while the body is read
			return httpErr
		}
		if err != nil {
			c.Logger().Errorf("Failed to read contact submission: %v", err)
			return c.Blob(http.StatusInternalServerError, echo.MIMEApplicationJSON, readFailureBody)
		}
	}

	result := h.relay.Handle(req.Context(), req.Method, body)

	h.recorder.Record(services.RelayEventContext{
		IPAddress: c.RealIP(),
		UserAgent: req.UserAgent(),
		Duration:  time.Since(start),
	}, result)
	if h.monitor != nil {
		h.monitor.Observe(result)
	}

	return c.Blob(result.StatusCode, echo.MIMEApplicationJSON, result.Body)
}
