package occupancy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bugdem/strategyboard/internal/grid"
)

var (
	// ErrOccupied reports that one or more footprint cells already belong to
	// another occupant. Returned wrapped in *FootprintConflict.
	ErrOccupied = errors.New("occupancy: footprint overlaps occupied cells")

	// ErrAlreadyPlaced reports a second placement of an occupant that is
	// still registered. Callers must remove or move it instead.
	ErrAlreadyPlaced = errors.New("occupancy: occupant already placed")

	// ErrNotPlaced reports a remove or move of an occupant the map does not hold.
	ErrNotPlaced = errors.New("occupancy: occupant not placed")

	// ErrDesync reports that the caller's view of an occupant's anchor or
	// footprint disagrees with the map. The map is left untouched.
	ErrDesync = errors.New("occupancy: placement desynchronized")

	// ErrEmptyID is returned when an occupant has no identity.
	ErrEmptyID = errors.New("occupancy: empty occupant id")
)

// FootprintConflict lists the cells that prevented a placement.
type FootprintConflict struct {
	ID        ID
	Anchor    grid.Cell
	Footprint grid.Footprint
	Cells     []grid.Cell // Occupied footprint cells, in footprint order
}

func (e *FootprintConflict) Error() string {
	parts := make([]string, len(e.Cells))
	for i, c := range e.Cells {
		parts[i] = c.String()
	}
	return fmt.Sprintf("occupancy: cannot place %s (%s at %s): cells %s occupied",
		e.ID, e.Footprint, e.Anchor, strings.Join(parts, " "))
}

// Unwrap lets errors.Is match ErrOccupied.
func (e *FootprintConflict) Unwrap() error {
	return ErrOccupied
}

// IsInvariantViolation reports whether err signals desynchronized caller
// state rather than an ordinary feasibility failure.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrAlreadyPlaced) ||
		errors.Is(err, ErrNotPlaced) ||
		errors.Is(err, ErrDesync) ||
		errors.Is(err, ErrEmptyID)
}
