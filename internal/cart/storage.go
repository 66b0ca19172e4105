package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrCorruptState indicates the persisted snapshot could not be parsed.
// Callers recover by starting from an empty cart; the error never reaches
// the user flow.
var ErrCorruptState = errors.New("persisted cart state is corrupt")

// DefaultStorageKey is the fixed key the cart snapshot is persisted under.
const DefaultStorageKey = "cart-storage"

// Storage persists the full cart snapshot under a fixed key.
type Storage interface {
	// Load returns the persisted state and whether one existed.
	Load(ctx context.Context) (State, bool, error)
	// Save overwrites the persisted state.
	Save(ctx context.Context, state State) error
}

// RedisStorage stores the serialized cart state in a Redis string key.
type RedisStorage struct {
	Client *redis.Client
	Key    string
}

func (s RedisStorage) key() string {
	if s.Key == "" {
		return DefaultStorageKey
	}
	return s.Key
}

// Load implements Storage.
func (s RedisStorage) Load(ctx context.Context) (State, bool, error) {
	if s.Client == nil {
		return State{}, false, errors.New("cart storage not configured")
	}
	data, err := s.Client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, false, nil
		}
		return State{}, false, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, false, ErrCorruptState
	}
	return state, true, nil
}

// Save implements Storage. The write is synchronous: it completes (or fails)
// before the mutation that triggered it returns.
func (s RedisStorage) Save(ctx context.Context, state State) error {
	if s.Client == nil {
		return errors.New("cart storage not configured")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(), data, 0).Err()
}
