package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"upaheart-backend/internal/models"
)

// ErrNotFound is returned by a Snapshotter when no snapshot exists for a
// cart id.
var ErrNotFound = errors.New("cart not found")

// ErrItemNotFound is returned when a cart line id does not exist.
var ErrItemNotFound = errors.New("cart item not found")

// Snapshotter persists full cart snapshots, one key per cart, overwritten on
// every write. Staged file bytes are excluded from the snapshot by the cart
// model's json tags.
type Snapshotter interface {
	Load(ctx context.Context, cartID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// Store holds the live carts. Carts are kept in memory (staged files
// included) and every mutation synchronously re-persists the cart snapshot.
// A cart evicted from memory is rehydrated from its snapshot on next access,
// minus any staged files.
type Store struct {
	mu        sync.RWMutex
	carts     map[string]*models.Cart
	snapshots Snapshotter
}

func NewStore(snapshots Snapshotter) *Store {
	return &Store{
		carts:     make(map[string]*models.Cart),
		snapshots: snapshots,
	}
}

// Get returns the cart for the given id, hydrating from the snapshot store
// or creating an empty cart as needed.
func (s *Store) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, cartID)
}

// get must be called with the lock held.
func (s *Store) get(ctx context.Context, cartID string) (*models.Cart, error) {
	if cart, ok := s.carts[cartID]; ok {
		return cart, nil
	}

	cart, err := s.snapshots.Load(ctx, cartID)
	if errors.Is(err, ErrNotFound) {
		now := time.Now().UTC()
		cart = &models.Cart{ID: cartID, Items: []models.CartItem{}, CreatedAt: now, UpdatedAt: now}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	s.carts[cartID] = cart
	return cart, nil
}

// persist must be called with the lock held.
func (s *Store) persist(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.snapshots.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// AddItem appends a new line for the product with a fresh line id and
// quantity 1. Repeated adds of the same product always create new lines.
func (s *Store) AddItem(ctx context.Context, cartID string, product models.Product) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		Product:    product,
		CartItemID: uuid.New().String(),
		Quantity:   1,
	}
	cart.Items = append(cart.Items, item)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart.Item(item.CartItemID), nil
}

// RemoveItem removes exactly the line with the given id. Removing an absent
// line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, cartID, cartItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.get(ctx, cartID)
	if err != nil {
		return err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.CartItemID != cartItemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	return s.persist(ctx, cart)
}

// StageCustomizationFile attaches an in-memory file to a line and clears its
// stored URL, so the new file must be uploaded before checkout can proceed.
func (s *Store) StageCustomizationFile(ctx context.Context, cartID, cartItemID string, file *models.StagedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.get(ctx, cartID)
	if err != nil {
		return err
	}

	item := cart.Item(cartItemID)
	if item == nil {
		return ErrItemNotFound
	}

	item.CustomizationFile = file
	item.CustomizationFileURL = ""

	return s.persist(ctx, cart)
}

// UpdateItem shallow-merges the non-nil fields of updates into a line.
func (s *Store) UpdateItem(ctx context.Context, cartID, cartItemID string, updates models.UpdateItemRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.get(ctx, cartID)
	if err != nil {
		return err
	}

	item := cart.Item(cartItemID)
	if item == nil {
		return ErrItemNotFound
	}

	if updates.CustomizationFileURL != nil {
		item.CustomizationFileURL = *updates.CustomizationFileURL
	}
	if updates.Quantity != nil && *updates.Quantity > 0 {
		item.Quantity = *updates.Quantity
	}

	return s.persist(ctx, cart)
}

// Clear drops the cart entirely, snapshot included, so the backend key is
// released rather than left holding an empty cart. Invoked on confirmed
// payment and by the cart DELETE endpoint; the next access starts a fresh
// cart under the same id.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)
	if err := s.snapshots.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
