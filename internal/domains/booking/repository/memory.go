package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"nestling/internal/domains/booking/model"
)

type memoryImpl struct {
	mu       sync.RWMutex
	bookings map[string]model.Booking
}

func NewMemory() Booking {
	return &memoryImpl{
		bookings: map[string]model.Booking{},
	}
}

func (repo *memoryImpl) Insert(_ context.Context, booking model.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.bookings[booking.ID] = booking

	return nil
}

func (repo *memoryImpl) Update(_ context.Context, booking model.Booking) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.bookings[booking.ID] = booking

	return nil
}

func (repo *memoryImpl) Get(_ context.Context, id string) (model.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return repo.bookings[id], nil
}

func (repo *memoryImpl) GetAll(_ context.Context) ([]model.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	bookings := make([]model.Booking, 0, len(repo.bookings))
	for _, booking := range repo.bookings {
		bookings = append(bookings, booking)
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}

func (repo *memoryImpl) FindOverlapping(_ context.Context, franchiseID string, start, end time.Time) ([]model.Booking, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var bookings []model.Booking

	for _, booking := range repo.bookings {
		if booking.FranchiseID != franchiseID || booking.BookingStatus == model.BookingStatusCancelled {
			continue
		}

		// Half-open interval overlap, shared boundaries do not collide.
		if booking.StartDatetime.Before(end) && booking.EndDatetime.After(start) {
			bookings = append(bookings, booking)
		}
	}

	return bookings, nil
}

type paymentMemoryImpl struct {
	mu       sync.RWMutex
	payments map[string]model.Payment
}

func NewPaymentMemory() Payment {
	return &paymentMemoryImpl{
		payments: map[string]model.Payment{},
	}
}

func (repo *paymentMemoryImpl) Insert(_ context.Context, payment model.Payment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.payments[payment.ID] = payment

	return nil
}

func (repo *paymentMemoryImpl) Get(_ context.Context, id string) (model.Payment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return repo.payments[id], nil
}

func (repo *paymentMemoryImpl) FindByBooking(_ context.Context, bookingID string) ([]model.Payment, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var payments []model.Payment

	for _, payment := range repo.payments {
		if payment.BookingID == bookingID {
			payments = append(payments, payment)
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})

	return payments, nil
}
