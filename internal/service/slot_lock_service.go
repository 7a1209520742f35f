package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digique-backend/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another request is booking the same slot.
var ErrSlotLocked = errors.New("slot is being booked by another request")

// releaseSlotScript deletes the lock only if it still holds our token, so a
// holder whose TTL expired cannot remove a newer holder's lock.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotLockKeyPrefix = "slot:lock:"

	// Timeout for the release call, which runs on a detached context
	slotReleaseTimeout = 2 * time.Second
)

// SlotLocker serialises bookings that target the same doctor, day and time.
type SlotLocker interface {
	// Acquire returns a release func on success, ErrSlotLocked when the slot
	// is held, or another error when the lock store is unreachable.
	Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, clock string) (func(), error)
}

type redisSlotLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisSlotLocker(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func SlotLockKey(doctorID uuid.UUID, date time.Time, clock string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotLockKeyPrefix, doctorID, timeslot.FormatDate(date), clock)
}

func (l *redisSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, clock string) (func(), error) {
	key := SlotLockKey(doctorID, date, clock)
	token := uuid.NewString()

	ok, err := l.redisClient.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), slotReleaseTimeout)
		defer cancel()
		if err := releaseSlotScript.Run(releaseCtx, l.redisClient, []string{key}, token).Err(); err != nil {
			l.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}
	return release, nil
}
