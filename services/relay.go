package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"softmatrices_site_go/config"
)

// RelayOutcome classifies the result of one relay invocation
type RelayOutcome string

const (
	OutcomeDelivered            RelayOutcome = "delivered"
	OutcomeMethodNotAllowed     RelayOutcome = "method_not_allowed"
	OutcomeConfigurationMissing RelayOutcome = "configuration_missing"
	OutcomeUpstreamRejected     RelayOutcome = "upstream_rejected"
	OutcomeTransportFailure     RelayOutcome = "transport_failure"
)

var (
	// ErrMissingAccessKey means the server has no Web3Forms access key configured
	ErrMissingAccessKey = errors.New("WEB3FORMS_ACCESS_KEY is missing")
	// ErrInvalidSubmission means the request body is not a JSON object
	ErrInvalidSubmission = errors.New("submission must be a JSON object")
)

const (
	configErrorVerbose = "Server configuration error: Missing Access Key. Please add WEB3FORMS_ACCESS_KEY to the server environment."
	configErrorTerse   = "Server configuration error"
	internalError      = "Internal Server Error"
	redacted           = "[redacted]"
)

var methodNotAllowedBody = json.RawMessage(`{"message":"Method Not Allowed"}`)

// Submitter delivers a forwarded payload to the form-delivery API
type Submitter interface {
	Submit(ctx context.Context, payload map[string]json.RawMessage) (*UpstreamResponse, error)
}

// RelayFailure describes why a submission was not delivered
type RelayFailure struct {
	Kind    RelayOutcome
	Message string
	Err     error
}

func (f *RelayFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return string(f.Kind)
}

func (f *RelayFailure) Unwrap() error {
	return f.Err
}

// RelayResult is what the caller receives. Body is always JSON.
type RelayResult struct {
	StatusCode     int
	Body           json.RawMessage
	UpstreamStatus int
	// Fields holds the submitted field names (never values), sorted
	Fields  []string
	Failure *RelayFailure
}

// Outcome returns the outcome kind of the result
func (r RelayResult) Outcome() RelayOutcome {
	if r.Failure == nil {
		return OutcomeDelivered
	}
	return r.Failure.Kind
}

// RelayOptions configures a ContactRelay
type RelayOptions struct {
	AccessKey     string
	VerboseErrors bool
	Upstream      Submitter
}

// ContactRelay forwards contact submissions to Web3Forms with the server-held access key
type ContactRelay struct {
	accessKey string
	verbose   bool
	upstream  Submitter
}

// NewContactRelay creates a relay from explicit options
func NewContactRelay(opts RelayOptions) *ContactRelay {
	return &ContactRelay{
		accessKey: opts.AccessKey,
		verbose:   opts.VerboseErrors,
		upstream:  opts.Upstream,
	}
}

// NewContactRelayFromConfig wires a relay to the configured Web3Forms endpoint
func NewContactRelayFromConfig(cfg *config.Config) *ContactRelay {
	return NewContactRelay(RelayOptions{
		AccessKey:     cfg.Web3FormsAccessKey,
		VerboseErrors: cfg.RelayVerboseErrors,
		Upstream:      NewWeb3FormsClient(cfg.Web3FormsURL, cfg.RelayTimeout),
	})
}

// Configured reports whether an access key is available
func (r *ContactRelay) Configured() bool {
	return r.accessKey != ""
}

// Handle relays one submission. It never panics and never returns the access key.
func (r *ContactRelay) Handle(ctx context.Context, method string, body []byte) (result RelayResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = r.transportFailure(fmt.Errorf("unexpected panic: %v", rec))
		}
	}()

	if method != http.MethodPost {
		return RelayResult{
			StatusCode: http.StatusMethodNotAllowed,
			Body:       methodNotAllowedBody,
			Failure:    &RelayFailure{Kind: OutcomeMethodNotAllowed, Message: "Method Not Allowed"},
		}
	}

	if r.accessKey == "" {
		log.Println("[RELAY] Error: WEB3FORMS_ACCESS_KEY is missing in environment variables.")
		message := configErrorTerse
		if r.verbose {
			message = configErrorVerbose
		}
		return r.failure(OutcomeConfigurationMissing, message, ErrMissingAccessKey)
	}

	payload, err := parseSubmission(body)
	if err != nil {
		return r.transportFailure(err)
	}
	fields := fieldNames(payload)

	key, err := json.Marshal(r.accessKey)
	if err != nil {
		return r.transportFailure(fmt.Errorf("failed to encode access key: %w", err))
	}
	payload[accessKeyField] = key

	resp, err := r.upstream.Submit(ctx, payload)
	if err != nil {
		if errors.Is(err, ErrUpstreamRejected) && resp != nil {
			log.Printf("[RELAY] Web3Forms API error: status %d", resp.StatusCode)
			return RelayResult{
				StatusCode:     http.StatusInternalServerError,
				Body:           resp.Body,
				UpstreamStatus: resp.StatusCode,
				Fields:         fields,
				Failure: &RelayFailure{
					Kind:    OutcomeUpstreamRejected,
					Message: fmt.Sprintf("upstream status %d", resp.StatusCode),
					Err:     err,
				},
			}
		}
		result := r.transportFailure(err)
		result.Fields = fields
		return result
	}

	return RelayResult{
		StatusCode:     resp.StatusCode,
		Body:           resp.Body,
		UpstreamStatus: resp.StatusCode,
		Fields:         fields,
	}
}

func (r *ContactRelay) transportFailure(err error) RelayResult {
	log.Printf("[RELAY] Relay error: %s", r.redact(err.Error()))
	message := internalError
	if r.verbose {
		message = internalError + ": " + err.Error()
	}
	return r.failure(OutcomeTransportFailure, message, err)
}

func (r *ContactRelay) failure(kind RelayOutcome, message string, err error) RelayResult {
	message = r.redact(message)
	body, encErr := json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Success: false, Message: message})
	if encErr != nil {
		body = []byte(`{"success":false,"message":"Internal Server Error"}`)
	}
	return RelayResult{
		StatusCode: http.StatusInternalServerError,
		Body:       body,
		Failure:    &RelayFailure{Kind: kind, Message: message, Err: err},
	}
}

// redact strips the access key from text that may reach a caller or a log line
func (r *ContactRelay) redact(s string) string {
	if r.accessKey == "" {
		return s
	}
	return strings.ReplaceAll(s, r.accessKey, redacted)
}

// parseSubmission decodes the request body into a field map. An empty body is an empty submission.
func parseSubmission(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrInvalidSubmission
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse submission: %w", err)
	}
	return payload, nil
}

func fieldNames(payload map[string]json.RawMessage) []string {
	names := make([]string, 0, len(payload))
	for name := range payload {
		if name == accessKeyField {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
