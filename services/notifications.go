package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Lebronlang/Boardify/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Notifier delivers booking and billing events to users. Implementations must
// not block the caller: delivery happens outside the request transaction.
type Notifier interface {
	Notify(n models.Notification)
}

// NopNotifier drops events. Used in tests and when no queue is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(models.Notification) {}

const notificationQueue = "notifications:outbox"

// QueueNotifier pushes events onto a Redis list; a NotificationWorker drains
// it in the background.
type QueueNotifier struct {
	redis *redis.Client
}

func NewQueueNotifier(r *redis.Client) *QueueNotifier {
	return &QueueNotifier{redis: r}
}

func (q *QueueNotifier) Notify(n models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("notifications: failed to marshal event: %v", err)
		return
	}
	if err := q.redis.LPush(context.Background(), notificationQueue, payload).Err(); err != nil {
		log.Printf("notifications: failed to enqueue event for user %d: %v", n.UserID, err)
	}
}

// NotificationWorker drains the outbox queue and persists notifications for
// users that allow them.
type NotificationWorker struct {
	redis *redis.Client
	db    *gorm.DB
}

func NewNotificationWorker(r *redis.Client, db *gorm.DB) *NotificationWorker {
	return &NotificationWorker{redis: r, db: db}
}

func (w *NotificationWorker) Run(ctx context.Context) {
	log.Println("notifications: worker started")
	for {
		res, err := w.redis.BRPop(ctx, 5*time.Second, notificationQueue).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				log.Println("notifications: worker stopped")
				return
			}
			log.Printf("notifications: queue read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}

		var n models.Notification
		if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
			log.Printf("notifications: dropping malformed event: %v", err)
			continue
		}
		w.deliver(&n)
	}
}

func (w *NotificationWorker) deliver(n *models.Notification) {
	var user models.User
	if err := w.db.First(&user, n.UserID).Error; err != nil {
		log.Printf("notifications: user %d not found, dropping event", n.UserID)
		return
	}
	if user.AllowsNotifications != nil && !*user.AllowsNotifications {
		return
	}
	// Reset the identity fields so the queue payload never dictates the row id.
	n.ID = 0
	if err := w.db.Create(n).Error; err != nil {
		log.Printf("notifications: failed to persist event for user %d: %v", n.UserID, err)
		return
	}
	log.Printf("notifications: delivered %s to user %d", n.Type, n.UserID)
}
