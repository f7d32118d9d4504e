package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"softmatrices_site_go/config"

	"github.com/microcosm-cc/bluemonday"
	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

var alertPolicy = bluemonday.StrictPolicy()

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email in a goroutine so alerting never blocks a request
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildRelayAlertEmail creates the operator notification for a relay alert
func BuildRelayAlertEmail(to string, alert RelayAlert) *Email {
	subject := fmt.Sprintf("Contact form alert: %s", alert.Kind)
	when := alert.Timestamp.UTC().Format(time.RFC1123)

	text := fmt.Sprintf(
		"The website contact relay reported a problem.\n\nType: %s\nOccurrences: %d\nTime: %s\nDetail: %s\n\nSubmissions may not be reaching the inbox until this is resolved.",
		alert.Kind, alert.Count, when, alert.Message,
	)

	html := fmt.Sprintf(
		"<p>The website contact relay reported a problem.</p><ul><li><strong>Type:</strong> %s</li><li><strong>Occurrences:</strong> %d</li><li><strong>Time:</strong> %s</li><li><strong>Detail:</strong> %s</li></ul><p>Submissions may not be reaching the inbox until this is resolved.</p>",
		alertPolicy.Sanitize(string(alert.Kind)), alert.Count, when, alertPolicy.Sanitize(alert.Message),
	)

	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
		TextBody: text,
	}
}
