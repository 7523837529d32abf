package workers

import (
	"context"
	"log"
	"time"

	"estradaLeveAPI/services"
)

// StartNotificationCleanup runs an hourly sweep that deletes expired app
// notifications. It stops when ctx is cancelled.
func StartNotificationCleanup(ctx context.Context, notifications *services.NotificationService) {
	ticker := time.NewTicker(1 * time.Hour)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				deleted, err := notifications.DeleteExpired(sweepCtx)
				cancel()
				if err != nil {
					log.Printf("Workers: notification cleanup failed: %v", err)
					continue
				}
				if deleted > 0 {
					log.Printf("Workers: removed %d expired notifications", deleted)
				}
			}
		}
	}()
}
