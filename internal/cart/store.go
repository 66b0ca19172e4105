package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/franco-vega/backend-tienda/internal/catalog"
	"github.com/franco-vega/backend-tienda/internal/obs"
	"github.com/franco-vega/backend-tienda/internal/pricing"
)

// Store owns the live cart state. Mutations run through the pure reducer and
// the resulting snapshot is persisted before the call returns, so a crash
// between two mutations leaves the previous snapshot intact. A single mutex
// serializes writers; the business rules stay storage-free inside Apply.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
	logger  zerolog.Logger
}

// NewStore rehydrates the cart from storage. A missing or corrupt snapshot
// yields an empty cart; rehydration never fails the caller.
func NewStore(ctx context.Context, storage Storage, logger zerolog.Logger) *Store {
	s := &Store{storage: storage, logger: logger, state: State{Items: []Line{}}}
	if storage == nil {
		return s
	}
	state, ok, err := storage.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("cart restore failed, starting empty")
		if obs.CartRestoreFallbacks != nil {
			obs.CartRestoreFallbacks.Inc()
		}
		return s
	}
	if ok {
		if state.Items == nil {
			state.Items = []Line{}
		}
		s.state = state
	}
	return s
}

// AddItem merges the quantity into an existing line with the same
// (product, color, size) identity or appends a new line at the base price.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int, color, size string) (State, error) {
	if quantity <= 0 {
		return s.Snapshot(), pricing.ErrInvalidQuantity
	}
	return s.dispatch(ctx, AddItem{Product: product, Quantity: quantity, Color: color, Size: size}), nil
}

// RemoveItem drops all lines for the product id.
func (s *Store) RemoveItem(ctx context.Context, productID int) State {
	return s.dispatch(ctx, RemoveItem{ProductID: productID})
}

// UpdateQuantity overwrites the quantity of all lines for the product id;
// non-positive quantities remove them.
func (s *Store) UpdateQuantity(ctx context.Context, productID, quantity int) State {
	return s.dispatch(ctx, UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) State {
	return s.dispatch(ctx, Clear{})
}

// GetItemQuantity returns the quantity held for the product id, 0 if absent.
func (s *Store) GetItemQuantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemQuantity(productID)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func (s *Store) dispatch(ctx context.Context, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.state, action)
	if obs.CartMutationTotal != nil {
		obs.CartMutationTotal.WithLabelValues(action.Name()).Inc()
	}
	if s.storage != nil {
		// Persistence errors degrade to in-memory state only; they never
		// surface to the user flow.
		if err := s.storage.Save(ctx, s.state); err != nil {
			s.logger.Error().Err(err).Str("action", action.Name()).Msg("persist cart snapshot")
			if obs.CartPersistFailures != nil {
				obs.CartPersistFailures.Inc()
			}
		}
	}
	return copyState(s.state)
}

func copyState(state State) State {
	out := state
	out.Items = make([]Line, len(state.Items))
	copy(out.Items, state.Items)
	return out
}
