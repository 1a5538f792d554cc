package items

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/errors"
	redisclient "github.com/KirkDiggler/simulacrum/internal/redis"
)

const (
	// Key pattern: item:{owner_id}:{item_id}
	itemKeyPrefix = "item:"
	indexSuffix   = "index"
	// Hash of canonical action uuid -> copy id
	instancesSuffix = "instances"

	// Error messages
	errItemNil       = "item cannot be nil"
	errItemIDEmpty   = "item ID cannot be empty"
	errOwnerIDEmpty  = "owner ID cannot be empty"
	errChangesetNil  = "changeset cannot be nil"
	errOriginalEmpty = "original uuid cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis item repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	key := itemKey(input.Item.OwnerID, input.Item.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("item with ID %s already exists", input.Item.ID)
	}

	_, err = r.Apply(ctx, ApplyInput{Changeset: &Changeset{
		OwnerID: input.Item.OwnerID,
		Creates: []*simulacrum.Item{input.Item},
	}})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create item")
	}

	return &CreateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	result, err := r.client.Get(ctx, itemKey(input.OwnerID, input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	item, err := decodeItem(result)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Item: item}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerKey(input.OwnerID, indexSuffix)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get items from index %s", indexKey)
	}
	if len(ids) == 0 {
		return &ListOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(input.OwnerID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get items for owner %s", input.OwnerID)
	}

	list := make([]*simulacrum.Item, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// If item doesn't exist, clean up the index
			slog.WarnContext(ctx, "item not found, cleaning up index",
				"item_id", ids[i],
				"index_key", indexKey)
			r.client.SRem(ctx, indexKey, ids[i])
			continue
		}

		item, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}
		if input.Type != "" && item.Type != input.Type {
			continue
		}
		list = append(list, item)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})

	return &ListOutput{Items: list}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, GetInput{OwnerID: input.Item.OwnerID, ID: input.Item.ID})
	if err != nil {
		return nil, err
	}

	cs := &Changeset{
		OwnerID: input.Item.OwnerID,
		Updates: []*simulacrum.Item{input.Item},
	}

	// A changed originalUuid moves the instance index entry
	if prev := existing.Item.OriginalUUID(); prev != "" && prev != input.Item.OriginalUUID() {
		if _, err := r.client.HDel(ctx, ownerKey(input.Item.OwnerID, instancesSuffix), prev).Result(); err != nil {
			return nil, errors.Wrapf(err, "failed to update instance index")
		}
	}

	if _, err := r.Apply(ctx, ApplyInput{Changeset: cs}); err != nil {
		return nil, errors.Wrapf(err, "failed to update item")
	}

	return &UpdateOutput{Item: input.Item}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if len(input.IDs) == 0 {
		return &DeleteOutput{}, nil
	}

	cs := &Changeset{OwnerID: input.OwnerID}
	deleted := make([]string, 0, len(input.IDs))
	for _, id := range input.IDs {
		if id == "" {
			continue
		}
		out, err := r.Get(ctx, GetInput{OwnerID: input.OwnerID, ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.DebugContext(ctx, "skipping delete of missing item",
					"owner_id", input.OwnerID,
					"item_id", id)
				continue
			}
			return nil, err
		}
		cs.Deletes = append(cs.Deletes, out.Item)
		deleted = append(deleted, id)
	}

	if _, err := r.Apply(ctx, ApplyInput{Changeset: cs}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete items")
	}

	return &DeleteOutput{Deleted: deleted}, nil
}

func (r *redisRepository) DeleteOwner(ctx context.Context, input DeleteOwnerInput) (*DeleteOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerKey(input.OwnerID, indexSuffix)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get items from index %s", indexKey)
	}

	keys := make([]string, 0, len(ids)+2)
	for _, id := range ids {
		keys = append(keys, itemKey(input.OwnerID, id))
	}
	keys = append(keys, indexKey, ownerKey(input.OwnerID, instancesSuffix))

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete items of owner %s", input.OwnerID)
	}

	return &DeleteOwnerOutput{Deleted: len(ids)}, nil
}

func (r *redisRepository) FindInstance(ctx context.Context, input FindInstanceInput) (*FindInstanceOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.OriginalUUID == "" {
		return nil, errors.InvalidArgument(errOriginalEmpty)
	}

	instancesKey := ownerKey(input.OwnerID, instancesSuffix)
	id, err := r.client.HGet(ctx, instancesKey, input.OriginalUUID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no instance of %s", input.OriginalUUID)
		}
		return nil, errors.Wrapf(err, "failed to read instance index")
	}

	out, err := r.Get(ctx, GetInput{OwnerID: input.OwnerID, ID: id})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		slog.WarnContext(ctx, "stale instance index entry, cleaning up",
			"owner_id", input.OwnerID,
			"original_uuid", input.OriginalUUID,
			"item_id", id)
		r.client.HDel(ctx, instancesKey, input.OriginalUUID)
		return nil, errors.NotFoundf("no instance of %s", input.OriginalUUID)
	}

	if out.Item.OriginalUUID() != input.OriginalUUID {
		return nil, errors.NotFoundf("no instance of %s", input.OriginalUUID)
	}

	return &FindInstanceOutput{Item: out.Item}, nil
}

// Apply runs deletes before creates and updates so a changeset may replace
// an instance of the same canonical action.
func (r *redisRepository) Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error) {
	cs := input.Changeset
	if cs == nil {
		return nil, errors.InvalidArgument(errChangesetNil)
	}
	if cs.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if cs.Empty() {
		return &ApplyOutput{}, nil
	}

	indexKey := ownerKey(cs.OwnerID, indexSuffix)
	instancesKey := ownerKey(cs.OwnerID, instancesSuffix)

	pipe := r.client.TxPipeline()

	for _, item := range cs.Deletes {
		if err := r.checkOwner(cs.OwnerID, item); err != nil {
			return nil, err
		}
		pipe.Del(ctx, itemKey(cs.OwnerID, item.ID))
		pipe.SRem(ctx, indexKey, item.ID)
		if orig := item.OriginalUUID(); orig != "" {
			pipe.HDel(ctx, instancesKey, orig)
		}
	}

	puts := make([]*simulacrum.Item, 0, len(cs.Creates)+len(cs.Updates))
	puts = append(puts, cs.Creates...)
	puts = append(puts, cs.Updates...)
	for _, item := range puts {
		if err := r.checkOwner(cs.OwnerID, item); err != nil {
			return nil, err
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal item %s", item.ID)
		}
		pipe.Set(ctx, itemKey(cs.OwnerID, item.ID), data, 0)
		pipe.SAdd(ctx, indexKey, item.ID)
		if orig := item.OriginalUUID(); orig != "" {
			pipe.HSet(ctx, instancesKey, orig, item.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to apply changeset")
	}

	return &ApplyOutput{
		Created: len(cs.Creates),
		Updated: len(cs.Updates),
		Deleted: len(cs.Deletes),
	}, nil
}

func (r *redisRepository) checkOwner(ownerID string, item *simulacrum.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return errors.InvalidArgumentf("item %s belongs to %s, not %s", item.ID, item.OwnerID, ownerID)
	}
	return nil
}

func validateItem(item *simulacrum.Item) error {
	if item == nil {
		return errors.InvalidArgument(errItemNil)
	}
	if item.ID == "" {
		return errors.InvalidArgument(errItemIDEmpty)
	}
	if item.OwnerID == "" {
		return errors.InvalidArgument(errOwnerIDEmpty)
	}
	return nil
}

func decodeItem(raw string) (*simulacrum.Item, error) {
	var item simulacrum.Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item data")
	}
	return &item, nil
}

func itemKey(ownerID, id string) string {
	return fmt.Sprintf("%s%s:%s", itemKeyPrefix, ownerID, id)
}

func ownerKey(ownerID, suffix string) string {
	return fmt.Sprintf("%s%s:%s", itemKeyPrefix, ownerID, suffix)
}
