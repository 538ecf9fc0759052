// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for game action logs.
const DefaultQueueName = "modernart_actions"

// ActionRecord holds the minimal info needed by the historian to persist one
// game action.
type ActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorUserID   uuid.UUID              `json:"actor_user_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// Queue is a Redis list used as a FIFO of action records.
type Queue struct {
	Rdb  *redis.Client
	Name string
}

// Connect opens a client for addr/db and pings it.
func Connect(ctx context.Context, addr string, db int, queueName string) (*Queue, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	if queueName == "" {
		queueName = DefaultQueueName
	}
	return &Queue{Rdb: rdb, Name: queueName}, nil
}

// Publish serializes record to JSON and pushes it onto the queue.
func (q *Queue) Publish(ctx context.Context, record ActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	if err := q.Rdb.RPush(ctx, q.Name, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.Name, err)
	}
	return nil
}

// Pop blocks up to timeout for the next record. ok is false when the wait
// timed out.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (rec ActionRecord, ok bool, err error) {
	res, err := q.Rdb.BLPop(ctx, timeout, q.Name).Result()
	if errors.Is(err, redis.Nil) {
		return ActionRecord{}, false, nil
	}
	if err != nil {
		return ActionRecord{}, false, err
	}
	// res[0] is the queue name and res[1] the payload.
	if len(res) < 2 {
		return ActionRecord{}, false, nil
	}
	rec, err = DecodeRecord([]byte(res[1]))
	if err != nil {
		return ActionRecord{}, false, err
	}
	return rec, true, nil
}

// Len is the number of queued records.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.Rdb.LLen(ctx, q.Name).Result()
}

// Close releases the client.
func (q *Queue) Close() error {
	return q.Rdb.Close()
}

// DecodeRecord parses one queued payload.
func DecodeRecord(data []byte) (ActionRecord, error) {
	var rec ActionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ActionRecord{}, fmt.Errorf("invalid action record: %w", err)
	}
	if rec.GameID == uuid.Nil {
		return ActionRecord{}, fmt.Errorf("invalid action record: missing game_id")
	}
	return rec, nil
}
