// Package dashboard keeps the local list of food plates in step with the
// remote /foods collection and tracks the state of the add and edit modals.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorestaurant/internal/models"

	"github.com/rs/zerolog"
)

var (
	// ErrNoEditingTarget is returned by UpdateFood when no plate was selected
	ErrNoEditingTarget = errors.New("no food plate selected for editing")
	// ErrFoodNotFound is returned when an id is not in the local list
	ErrFoodNotFound = errors.New("food plate not found")
)

// FoodsAPI is the remote collection resource
type FoodsAPI interface {
	List(ctx context.Context) ([]models.FoodPlate, error)
	Create(ctx context.Context, plate models.FoodPlate) (models.FoodPlate, error)
	Update(ctx context.Context, id uint, plate models.FoodPlate) (models.FoodPlate, error)
	Delete(ctx context.Context, id uint) error
}

// Controller owns the dashboard state. It is safe for concurrent use; the
// lock is never held while a request is in flight.
type Controller struct {
	api FoodsAPI
	log zerolog.Logger

	initOnce sync.Once

	mu            sync.RWMutex
	foods         []models.FoodPlate
	editing       models.FoodPlate
	addModalOpen  bool
	editModalOpen bool
}

// NewController creates a controller with an empty list and both modals closed
func NewController(api FoodsAPI, logger zerolog.Logger) *Controller {
	return &Controller{
		api:   api,
		log:   logger.With().Str("component", "dashboard").Logger(),
		foods: []models.FoodPlate{},
	}
}

// Initialize loads the full collection. Only the first call does any work;
// later calls return nil without contacting the server.
func (c *Controller) Initialize(ctx context.Context) error {
	var err error
	c.initOnce.Do(func() {
		err = c.load(ctx)
	})
	return err
}

func (c *Controller) load(ctx context.Context) error {
	foods, err := c.api.List(ctx)
	if err != nil {
		return fmt.Errorf("load food plates: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.foods = append([]models.FoodPlate{}, foods...)
	c.log.Debug().Int("count", len(foods)).Msg("food plates loaded")
	return nil
}

// CreateFood adds a new, available plate. Failures are logged and dropped;
// the list only changes once the server has answered.
func (c *Controller) CreateFood(ctx context.Context, draft models.FoodDraft) {
	created, err := c.api.Create(ctx, draft.Plate())
	if err != nil {
		c.log.Error().Err(err).Str("name", draft.Name).Msg("failed to add food plate")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.foods = append(c.foods, created)
}

// UpdateFood merges patch over the editing target, sends the result and
// replaces the matching element with the server's copy. The editing target
// is cleared on success.
func (c *Controller) UpdateFood(ctx context.Context, patch models.FoodPatch) error {
	c.mu.RLock()
	target := c.editing
	c.mu.RUnlock()

	if target.IsZero() {
		return ErrNoEditingTarget
	}

	updated, err := c.api.Update(ctx, target.ID, patch.Apply(target))
	if err != nil {
		return fmt.Errorf("update food plate %d: %w", target.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(target.ID, updated)
	c.editing = models.FoodPlate{}
	return nil
}

// DeleteFood removes a plate remotely and then locally. An id missing from
// the list still produces a request.
func (c *Controller) DeleteFood(ctx context.Context, id uint) error {
	if err := c.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete food plate %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, food := range c.foods {
		if food.ID == id {
			c.foods = append(c.foods[:i:i], c.foods[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleAvailability flips the available flag of a listed plate
func (c *Controller) ToggleAvailability(ctx context.Context, id uint) error {
	c.mu.RLock()
	current, ok := c.find(id)
	c.mu.RUnlock()

	if !ok {
		return ErrFoodNotFound
	}

	updated, err := c.api.Update(ctx, id, current.Toggled())
	if err != nil {
		return fmt.Errorf("toggle availability of food plate %d: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(id, updated)
	return nil
}

// SelectForEdit sets the editing target
func (c *Controller) SelectForEdit(food models.FoodPlate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = food
}

// ToggleAddModal flips the add modal visibility
func (c *Controller) ToggleAddModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addModalOpen = !c.addModalOpen
}

// ToggleEditModal flips the edit modal visibility
func (c *Controller) ToggleEditModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editModalOpen = !c.editModalOpen
}

// Foods returns a copy of the local list
func (c *Controller) Foods() []models.FoodPlate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.FoodPlate{}, c.foods...)
}

// EditingFood returns the editing target, or the zero plate when unset
func (c *Controller) EditingFood() models.FoodPlate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editing
}

func (c *Controller) AddModalOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.addModalOpen
}

func (c *Controller) EditModalOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editModalOpen
}

// replace must be called with mu held
func (c *Controller) replace(id uint, food models.FoodPlate) {
	for i := range c.foods {
		if c.foods[i].ID == id {
			c.foods[i] = food
		}
	}
}

// find must be called with mu held
func (c *Controller) find(id uint) (models.FoodPlate, bool) {
	for _, food := range c.foods {
		if food.ID == id {
			return food, true
		}
	}
	return models.FoodPlate{}, false
}
