package buffer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores each session's log as one JSON blob, so the buffer
// survives restarts and is shared across instances. The TTL mirrors
// the storefront session lifetime; an expired key is simply a guest
// who never logged in.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

const maxTxRetries = 100

func buildKey(sessionID string) string {
	return "guest:actions:" + sessionID
}

func (r *Redis) RecordView(ctx context.Context, sessionID string, productID int64) error {
	return r.update(ctx, sessionID, func(l *Log) { l.addView(productID) })
}

func (r *Redis) RecordRating(ctx context.Context, sessionID string, productID int64, value int) error {
	return r.update(ctx, sessionID, func(l *Log) { l.addRating(productID, value) })
}

// Drain uses GETDEL so two concurrent logins for the same session
// cannot both replay the log.
func (r *Redis) Drain(ctx context.Context, sessionID string) (*Log, error) {
	key := buildKey(sessionID)
	val, err := r.client.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("drain guest log %s: %w", key, err)
	}

	var l Log
	if err := json.Unmarshal(val, &l); err != nil {
		return nil, fmt.Errorf("unmarshal guest log %s: %w", key, err)
	}
	return &l, nil
}

// update applies one mutation to the session's log inside an
// optimistic per-key transaction: two tabs recording at once must not
// lose each other's writes, and a write racing a drain must not
// resurrect the log the drain removed.
func (r *Redis) update(ctx context.Context, sessionID string, mutate func(*Log)) error {
	key := buildKey(sessionID)

	txf := func(tx *redis.Tx) error {
		var l Log
		val, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			// first guest action of this session
		case err != nil:
			return fmt.Errorf("get guest log %s: %w", key, err)
		default:
			if err := json.Unmarshal(val, &l); err != nil {
				return fmt.Errorf("unmarshal guest log %s: %w", key, err)
			}
		}

		mutate(&l)

		out, err := json.Marshal(&l)
		if err != nil {
			return fmt.Errorf("marshal guest log: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if err == redis.TxFailedErr {
			// the key changed under us, take another run
			continue
		}
		return err
	}
	return fmt.Errorf("record guest action %s: %w", key, redis.TxFailedErr)
}

// Ping connectivity
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
