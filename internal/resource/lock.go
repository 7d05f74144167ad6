// AngelaMos | 2026
// lock.go

package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix    = "records:create:"
	lockPollInterval = 20 * time.Millisecond
)

var ErrLockTimeout = errors.New("create lock wait timed out")

// Locker serializes creates that share a content fingerprint.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// CreateLock is a Locker backed by redis SET NX PX. A holder that dies keeps
// the key only until ttl expires.
type CreateLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCreateLock(client *redis.Client, ttl time.Duration) *CreateLock {
	return &CreateLock{client: client, ttl: ttl}
}

// Acquire blocks until the key is free, ctx ends or ttl elapses. Only the
// holder's token can release the key.
func (l *CreateLock) Acquire(
	ctx context.Context,
	key string,
) (func(), error) {
	token := uuid.NewString()
	fullKey := lockKeyPrefix + key
	deadline := time.Now().Add(l.ttl)

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire create lock: %w", err)
		}
		if ok {
			return func() {
				//nolint:errcheck // the key expires on its own if this fails
				_ = releaseScript.Run(
					context.WithoutCancel(ctx),
					l.client,
					[]string{fullKey},
					token,
				).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire create lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// fingerprint identifies a create request by kind, owner and content.
func fingerprint(kind, ownerID string, fields Fields) (string, error) {
	pairs := make([][2]any, 0, len(fields))
	for _, col := range fields.sortedKeys() {
		pairs = append(pairs, [2]any{col, fields[col]})
	}

	body, err := json.Marshal(struct {
		Kind   string   `json:"k"`
		Owner  string   `json:"o"`
		Fields [][2]any `json:"f"`
	}{kind, ownerID, pairs})
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", kind, err)
	}

	sum := sha256.Sum256(body)
	return kind + ":" + hex.EncodeToString(sum[:]), nil
}
