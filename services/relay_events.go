package services

import (
	"encoding/hex"
	"log"
	"strings"
	"sync"
	"time"

	"softmatrices_site_go/models"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// RelayEventContext contains request metadata for a relay event
type RelayEventContext struct {
	IPAddress string
	UserAgent string
	Duration  time.Duration
}

// RelayEventRecorder writes relay events asynchronously so responses are never held by the database
type RelayEventRecorder struct {
	db         *gorm.DB
	hashSecret []byte
	wg         sync.WaitGroup
}

// NewRelayEventRecorder creates a recorder. A nil db makes Record a no-op.
func NewRelayEventRecorder(db *gorm.DB, ipHashSecret string) *RelayEventRecorder {
	return &RelayEventRecorder{
		db:         db,
		hashSecret: []byte(ipHashSecret),
	}
}

// Enabled reports whether events are persisted
func (r *RelayEventRecorder) Enabled() bool {
	return r != nil && r.db != nil
}

// Record stores the outcome of a relay invocation in the background
func (r *RelayEventRecorder) Record(ctx RelayEventContext, result RelayResult) {
	if !r.Enabled() {
		return
	}

	event := models.RelayEvent{
		Outcome:        string(result.Outcome()),
		StatusCode:     result.StatusCode,
		UpstreamStatus: result.UpstreamStatus,
		DurationMs:     ctx.Duration.Milliseconds(),
		IPHash:         HashClientIP(r.hashSecret, ctx.IPAddress),
		UserAgent:      truncate(ctx.UserAgent, 255),
		Fields:         strings.Join(result.Fields, ","),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.db.Create(&event).Error; err != nil {
			log.Printf("[RELAY] Failed to record relay event: %v", err)
		}
	}()
}

// Wait blocks until all pending events are written
func (r *RelayEventRecorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

// HashClientIP pseudonymises an IP address with a keyed BLAKE2b-256 hash
func HashClientIP(secret []byte, ip string) string {
	if ip == "" {
		return ""
	}
	// blake2b rejects keys longer than 64 bytes
	if len(secret) > blake2b.Size {
		sum := blake2b.Sum512(secret)
		secret = sum[:]
	}
	h, err := blake2b.New256(secret)
	if err != nil {
		log.Printf("[RELAY] Failed to initialise IP hash: %v", err)
		return ""
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}

// RelayEventFilters contains filter options for relay event queries
type RelayEventFilters struct {
	Outcome  string
	DateFrom time.Time
	DateTo   time.Time
}

// ListRelayEvents retrieves paginated relay events, newest first
func ListRelayEvents(db *gorm.DB, filters RelayEventFilters, page, pageSize int) ([]models.RelayEvent, int64, error) {
	query := db.Model(&models.RelayEvent{})

	if filters.Outcome != "" {
		query = query.Where("outcome = ?", filters.Outcome)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var events []models.RelayEvent
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error

	return events, total, err
}

// RelayOutcomeCount is the number of events for one outcome
type RelayOutcomeCount struct {
	Outcome string
	Count   int64
}

// CountRelayEventsByOutcome groups events created at or after since by outcome
func CountRelayEventsByOutcome(db *gorm.DB, since time.Time) ([]RelayOutcomeCount, error) {
	var counts []RelayOutcomeCount
	err := db.Model(&models.RelayEvent{}).
		Select("outcome, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("outcome").
		Order("outcome").
		Scan(&counts).Error
	return counts, err
}

// PurgeRelayEvents deletes events created before cutoff and returns the number removed
func PurgeRelayEvents(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("created_at < ?", cutoff).Delete(&models.RelayEvent{})
	return result.RowsAffected, result.Error
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
