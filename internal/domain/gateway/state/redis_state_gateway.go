package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model"
	"weather-widget/pkg/redis"
)

// maxTxAttempts bounds the optimistic-lock loop of Update
const maxTxAttempts = 10

type redisStateGateway struct {
	client  *redis.Client
	checker *redis.HealthChecker
	prefix  string
	ttl     time.Duration
	now     func() time.Time
}

// NewRedisStateGateway creates a StateGateway shared by every instance using the same Redis.
// Sessions expire ttl after the last user activity recorded in LastSeenAt.
func NewRedisStateGateway(client *redis.Client, ttl time.Duration) StateGateway {
	return &redisStateGateway{
		client:  client,
		checker: redis.NewHealthChecker(client),
		prefix:  client.Key("session") + ":",
		ttl:     ttl,
		now:     time.Now,
	}
}

func (g *redisStateGateway) key(sessionID string) string {
	return g.prefix + sessionID
}

func (g *redisStateGateway) Get(ctx context.Context, sessionID string) (entity.WidgetState, error) {
	s := entity.NewWidgetState(sessionID)
	found, err := g.client.GetJSON(ctx, g.key(sessionID), &s)
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to load widget state: %w", err)
	}
	if !found {
		return entity.NewWidgetState(sessionID), nil
	}
	return s, nil
}

// Update runs fn inside a WATCH/MULTI transaction, starting over when another
// writer touched the session in between.
func (g *redisStateGateway) Update(ctx context.Context, sessionID string, fn UpdateFunc) (entity.WidgetState, error) {
	key := g.key(sessionID)

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		var result entity.WidgetState
		var fnErr error

		err := g.client.Watch(ctx, func(tx *goredis.Tx) error {
			current := entity.NewWidgetState(sessionID)
			exists := true
			data, err := tx.Get(ctx, key).Bytes()
			switch {
			case errors.Is(err, goredis.Nil):
				exists = false
			case err != nil:
				return err
			default:
				if err := json.Unmarshal(data, &current); err != nil {
					return fmt.Errorf("failed to decode widget state: %w", err)
				}
			}

			working := cloneState(current)
			if fnErr = fn(&working); fnErr != nil {
				result = current
				return nil
			}

			working.SessionID = sessionID
			working.UpdatedAt = g.now()
			payload, err := json.Marshal(working)
			if err != nil {
				return fmt.Errorf("failed to encode widget state: %w", err)
			}

			// writes without new user activity keep the running TTL
			keepTTL := exists && working.LastSeenAt.Equal(current.LastSeenAt)
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				if keepTTL {
					pipe.SetArgs(ctx, key, payload, goredis.SetArgs{KeepTTL: true})
				} else {
					pipe.Set(ctx, key, payload, g.ttl)
				}
				return nil
			})
			result = working
			return err
		}, key)

		if errors.Is(err, redis.ErrTxConflict) {
			continue
		}
		if err != nil {
			return entity.WidgetState{}, fmt.Errorf("failed to update widget state: %w", err)
		}
		return result, fnErr
	}

	return entity.WidgetState{}, fmt.Errorf("failed to update widget state: too many concurrent writers for session %s", sessionID)
}

func (g *redisStateGateway) Sessions(ctx context.Context) ([]string, error) {
	keys, err := g.client.ScanAll(ctx, g.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list widget sessions: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, g.prefix))
	}
	return ids, nil
}

// Sweep is a no-op: Redis expires idle sessions through the key TTL.
func (g *redisStateGateway) Sweep(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func (g *redisStateGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := g.checker.HealthCheck(ctx)
	details := map[string]string{"type": "redis"}
	for k, v := range check.Details {
		details[k] = v
	}

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: details}
}
