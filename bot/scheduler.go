package bot

import (
	"context"
	"log"
	"time"

	"sanitizer-bot/database"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the periodic replica sync job.
func startScheduler(replica *database.ReplicaSync) {
	log.Println("Initializing scheduler...")
	c = cron.New()

	spec := viper.GetString("replica.syncCron")
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := replica.Sync(ctx); err != nil {
			log.Printf("Periodic replica sync failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Printf("Replica sync scheduled with spec %q.", spec)
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
