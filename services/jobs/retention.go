package jobs

import (
	"fmt"
	"log"
	"time"

	"softmatrices_site_go/config"
	"softmatrices_site_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler schedules relay event retention and monitor pruning.
// The returned cron must be stopped on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config, monitor *services.RelayMonitor) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if database != nil {
		if _, err := c.AddFunc(cfg.RelayEventRetentionCron, func() {
			log.Println("[CRON] Running relay event retention...")
			PurgeExpiredRelayEvents(database, cfg.RelayEventRetention, time.Now())
		}); err != nil {
			return nil, fmt.Errorf("invalid RELAY_EVENT_RETENTION_CRON %q: %w", cfg.RelayEventRetentionCron, err)
		}
	}

	if monitor != nil {
		if _, err := c.AddFunc("@every 1h", monitor.Prune); err != nil {
			return nil, fmt.Errorf("failed to schedule monitor pruning: %w", err)
		}
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return c, nil
}

// PurgeExpiredRelayEvents deletes events older than retention relative to now
func PurgeExpiredRelayEvents(database *gorm.DB, retention time.Duration, now time.Time) int64 {
	removed, err := services.PurgeRelayEvents(database, now.Add(-retention))
	if err != nil {
		log.Printf("[JOB] Error purging relay events: %v", err)
		return 0
	}
	log.Printf("[JOB] Purged %d relay events older than %s", removed, retention)
	return removed
}
