package availabilityRepo

import (
	"context"
	"sync"

	"github.com/EAniwa/legacylancers-sub004/models"
)

// MemoryAvailabilityRepo is an in-memory implementation for tests and local
// development.
type MemoryAvailabilityRepo struct {
	mu      sync.RWMutex
	records map[string]models.Availability
}

// NewMemoryAvailabilityRepo constructs an empty in-memory repository.
func NewMemoryAvailabilityRepo() *MemoryAvailabilityRepo {
	return &MemoryAvailabilityRepo{records: make(map[string]models.Availability)}
}

func (repo *MemoryAvailabilityRepo) GetByID(_ context.Context, id string) (*models.Availability, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	av, ok := repo.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := av
	return &copied, nil
}

func (repo *MemoryAvailabilityRepo) GetByIDs(_ context.Context, ids []string) ([]models.Availability, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := make([]models.Availability, 0, len(ids))
	for _, id := range ids {
		av, ok := repo.records[id]
		if !ok {
			return nil, ErrNotFound
		}
		out = append(out, av)
	}
	return out, nil
}

func (repo *MemoryAvailabilityRepo) Create(_ context.Context, av *models.Availability) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.records[av.ID] = *av
	return nil
}

func (repo *MemoryAvailabilityRepo) Update(_ context.Context, av *models.Availability) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.records[av.ID]; !ok {
		return ErrNotFound
	}
	repo.records[av.ID] = *av
	return nil
}
