package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"swiftverify/internal/models"
)

const redisRecordsKey = "swiftverify:records"

// RedisStore keeps records as a Redis list of JSON blobs. RPUSH is atomic on
// the server, so concurrent appends need no client-side locking.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL and pings once to fail fast.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (rs *RedisStore) ReadAll(ctx context.Context) ([]models.VerificationRecord, error) {
	raw, err := rs.client.LRange(ctx, redisRecordsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("store: redis lrange: %w", err)
	}
	records := make([]models.VerificationRecord, 0, len(raw))
	for _, item := range raw {
		var rec models.VerificationRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("store: parse redis record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (rs *RedisStore) Append(ctx context.Context, rec models.VerificationRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal record: %w", err)
	}
	if err := rs.client.RPush(ctx, redisRecordsKey, raw).Err(); err != nil {
		return fmt.Errorf("store: redis rpush: %w", err)
	}
	return nil
}

func (rs *RedisStore) RemoveByID(ctx context.Context, id string) (*models.VerificationRecord, error) {
	raw, err := rs.client.LRange(ctx, redisRecordsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("store: redis lrange: %w", err)
	}
	for _, item := range raw {
		var rec models.VerificationRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("store: parse redis record: %w", err)
		}
		if rec.ID == id {
			// Remove the exact stored blob; list order stays intact.
			if err := rs.client.LRem(ctx, redisRecordsKey, 1, item).Err(); err != nil {
				return nil, fmt.Errorf("store: redis lrem: %w", err)
			}
			return &rec, nil
		}
	}
	return nil, nil
}

// Close releases the underlying connection pool.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
