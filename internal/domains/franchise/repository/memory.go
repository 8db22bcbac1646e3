package repository

import (
	"context"
	"sort"
	"sync"

	"nestling/internal/domains/franchise/model"
)

// memoryImpl is the swappable in-memory backend. It guards its map with a
// RWMutex so it is safe under the application-service locking discipline.
type memoryImpl struct {
	mu         sync.RWMutex
	franchises map[string]model.Franchise
}

func NewMemory() Franchise {
	return &memoryImpl{
		franchises: map[string]model.Franchise{},
	}
}

func (repo *memoryImpl) Insert(_ context.Context, franchise model.Franchise) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.franchises[franchise.ID] = franchise

	return nil
}

func (repo *memoryImpl) Get(_ context.Context, id string) (model.Franchise, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return repo.franchises[id], nil
}

func (repo *memoryImpl) GetAllActive(_ context.Context) ([]model.Franchise, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	franchises := make([]model.Franchise, 0, len(repo.franchises))
	for _, franchise := range repo.franchises {
		if franchise.IsActive {
			franchises = append(franchises, franchise)
		}
	}

	sort.Slice(franchises, func(i, j int) bool {
		return franchises[i].Name < franchises[j].Name
	})

	return franchises, nil
}
