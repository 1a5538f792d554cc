package chatmessage

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/simulacrum/internal/errors"
	"github.com/KirkDiggler/simulacrum/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/simulacrum/internal/redis"
)

const (
	// Key pattern: chat_message:{message_id}
	messageKeyPrefix = "chat_message:"
	// Sorted set of message ids scored by creation time
	speakerKeyPrefix = "chat_message:speaker:"
	defaultTTL       = 24 * time.Hour

	// Error messages
	errMessageNil     = "message cannot be nil"
	errMessageIDEmpty = "message ID cannot be empty"
	errActorIDEmpty   = "actor ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for chat messages
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a message with the specified TTL and indexes it under its
// speaker
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	msg := input.Message
	if msg == nil {
		return nil, errors.InvalidArgument(errMessageNil)
	}
	if msg.ID == "" {
		return nil, errors.InvalidArgument(errMessageIDEmpty)
	}
	if msg.Speaker.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	msg.CreatedAt = now
	msg.ExpiresAt = now.Add(ttl)

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal message")
	}

	speakerKey := speakerKeyPrefix + msg.Speaker.ActorID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, messageKeyPrefix+msg.ID, msgJSON, ttl)
	pipe.ZAdd(ctx, speakerKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: msg.ID,
	})
	// The index lives as long as its newest message
	pipe.Expire(ctx, speakerKey, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store message in Redis")
	}

	return &CreateOutput{Message: msg}, nil
}

// ListBySpeaker returns the live messages of an actor, oldest first.
// Expired entries are dropped from the index as they are found.
func (r *redisRepository) ListBySpeaker(
	ctx context.Context,
	input ListBySpeakerInput,
) (*ListBySpeakerOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	speakerKey := speakerKeyPrefix + input.ActorID
	start := int64(0)
	if input.Limit > 0 {
		start = int64(-input.Limit)
	}

	ids, err := r.client.ZRange(ctx, speakerKey, start, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read messages of %s", input.ActorID)
	}
	if len(ids) == 0 {
		return &ListBySpeakerOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = messageKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get messages from Redis")
	}

	now := r.clock.Now()
	messages := make([]*ChatMessage, 0, len(values))
	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}

		var msg ChatMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal message %s", ids[i])
		}
		if now.After(msg.ExpiresAt) {
			expired = append(expired, ids[i])
			continue
		}
		messages = append(messages, &msg)
	}

	if len(expired) > 0 {
		_ = r.client.ZRem(ctx, speakerKey, expired...)
	}

	return &ListBySpeakerOutput{Messages: messages}, nil
}
