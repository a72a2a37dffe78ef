package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Lock serializes registration writes per event through a Redis
// SetNX key. The value is a caller token so only the holder can
// release it; the TTL bounds how long a crashed writer can block an
// event.
type Lock struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *log.Logger
}

func NewLock(client *redis.Client, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Lock{
		Client: client,
		TTL:    ttl,
		Logger: log.Default(),
	}
}

func lockKey(eventID string) string {
	return "event_write_lock:" + eventID
}

// LockEvent attempts to take the write lock for an event. Returns
// false when another writer holds it.
func (l *Lock) LockEvent(eventID, token string) (bool, error) {
	ok, err := l.Client.SetNX(context.Background(), lockKey(eventID), token, l.TTL).Result()
	return ok, err
}

// UnlockEvent releases the lock if this caller still owns it. A lock
// held by someone else (or already expired) is left alone.
func (l *Lock) UnlockEvent(eventID, token string) error {
	ctx := context.Background()
	key := lockKey(eventID)

	val, err := l.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already released or expired
	}
	if err != nil {
		return err
	}
	if val != token {
		l.Logger.Println(fmt.Sprintf("REDIS: lock for event %s owned by another writer, leaving it", eventID))
		return nil
	}

	_, err = l.Client.Del(ctx, key).Result()
	return err
}
