package repository

import (
	"context"
	"sort"
	"sync"

	"nestling/internal/domains/session/model"
)

type memoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]model.BookingSession
}

func NewMemory() Session {
	return &memoryImpl{
		sessions: map[string]model.BookingSession{},
	}
}

func (repo *memoryImpl) Insert(_ context.Context, session model.BookingSession) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.sessions[session.ID] = session

	return nil
}

func (repo *memoryImpl) Update(_ context.Context, session model.BookingSession) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.sessions[session.ID] = session

	return nil
}

func (repo *memoryImpl) Get(_ context.Context, id string) (model.BookingSession, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return repo.sessions[id], nil
}

func (repo *memoryImpl) FindByBooking(_ context.Context, bookingID string) (model.BookingSession, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var found model.BookingSession

	for _, session := range repo.sessions {
		if session.BookingID != bookingID {
			continue
		}

		if found.ID == "" || session.CreatedAt.After(found.CreatedAt) {
			found = session
		}
	}

	return found, nil
}

func (repo *memoryImpl) ListActive(_ context.Context) ([]model.BookingSession, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var sessions []model.BookingSession

	for _, session := range repo.sessions {
		if session.IsActive() {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}
