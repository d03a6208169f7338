// Package catalog provides the registry of placeable blueprints.
// Buildings and units are registered by name; the board resolves a
// blueprint's capabilities once, when an occupant is placed.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bugdem/strategyboard/internal/grid"
)

var (
	ErrUnknownBlueprint = errors.New("catalog: unknown blueprint")
	ErrDuplicate        = errors.New("catalog: blueprint already registered")
	ErrInvalidBlueprint = errors.New("catalog: invalid blueprint")
)

// Kind tags what a blueprint places on the board.
type Kind uint8

const (
	KindBuilding Kind = iota + 1
	KindUnit
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindBuilding:
		return "building"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// Producer is the capability of spawning units next to the occupant.
type Producer struct {
	SpawnOffset grid.Cell // Relative to the producer's anchor
	Units       []string  // Blueprint names this producer can spawn
}

// Mobile is the capability of following move orders.
type Mobile struct {
	Speed float64 // Cells per second; informational for consumers
}

// Blueprint describes something that can be placed on the board.
type Blueprint struct {
	Name      string
	Title     string
	Kind      Kind
	Footprint grid.Footprint
	Producer  *Producer // nil if the blueprint cannot produce
	Mobile    *Mobile   // nil if the blueprint cannot move
}

// CanProduce reports whether the blueprint spawns the named unit.
func (b Blueprint) CanProduce(unit string) bool {
	if b.Producer == nil {
		return false
	}
	for _, u := range b.Producer.Units {
		if u == unit {
			return true
		}
	}
	return false
}

// Validate checks a blueprint in isolation.
func (b Blueprint) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidBlueprint)
	}
	if err := b.Footprint.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBlueprint, b.Name, err)
	}
	switch b.Kind {
	case KindBuilding:
		if b.Mobile != nil {
			return fmt.Errorf("%w: building %s cannot be mobile", ErrInvalidBlueprint, b.Name)
		}
	case KindUnit:
		if b.Producer != nil {
			return fmt.Errorf("%w: unit %s cannot produce", ErrInvalidBlueprint, b.Name)
		}
	default:
		return fmt.Errorf("%w: %s has no kind", ErrInvalidBlueprint, b.Name)
	}
	return nil
}

// Catalog is a set of blueprints keyed by name. Safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	blueprints map[string]Blueprint
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{blueprints: make(map[string]Blueprint)}
}

// Register adds a blueprint to the catalog.
func (c *Catalog) Register(bp Blueprint) error {
	if err := bp.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.blueprints[bp.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, bp.Name)
	}
	c.blueprints[bp.Name] = bp
	return nil
}

// Get returns a blueprint by name.
func (c *Catalog) Get(name string) (Blueprint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bp, ok := c.blueprints[name]
	if !ok {
		return Blueprint{}, fmt.Errorf("%w: %q", ErrUnknownBlueprint, name)
	}
	return bp, nil
}

// Exists checks if a blueprint with the given name is registered.
func (c *Catalog) Exists(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.blueprints[name]
	return ok
}

// List returns all blueprints, buildings first, each group sorted by name.
func (c *Catalog) List() []Blueprint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Blueprint, 0, len(c.blueprints))
	for _, bp := range c.blueprints {
		result = append(result, bp)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Kind != result[j].Kind {
			return result[i].Kind < result[j].Kind
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// Len returns the number of registered blueprints.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blueprints)
}

// Check verifies cross-references: every produced unit must be a
// registered unit blueprint.
func (c *Catalog) Check() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.blueprints))
	for name := range c.blueprints {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bp := c.blueprints[name]
		if bp.Producer == nil {
			continue
		}
		for _, u := range bp.Producer.Units {
			target, ok := c.blueprints[u]
			if !ok {
				return fmt.Errorf("%w: %s produces unknown unit %q", ErrInvalidBlueprint, name, u)
			}
			if target.Kind != KindUnit {
				return fmt.Errorf("%w: %s produces %q which is not a unit", ErrInvalidBlueprint, name, u)
			}
		}
	}
	return nil
}
