package availabilityRepo

import (
	"context"
	"errors"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// ErrNotFound means no availability exists with the given id.
var ErrNotFound = errors.New("availability not found")

// AvailabilityRepository persists provider-declared availability records.
// Records are provider-owned: created and mutated only through the service
// layer acting for the owner, and never hard-deleted while bookings reference
// them (status "closed" retires an availability instead).
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id string) (*models.Availability, error)
	// GetByIDs fetches a batch, preserving input order. Missing ids fail with
	// ErrNotFound so multi-party searches never silently skip a participant.
	GetByIDs(ctx context.Context, ids []string) ([]models.Availability, error)
	Create(ctx context.Context, av *models.Availability) error
	Update(ctx context.Context, av *models.Availability) error
}
