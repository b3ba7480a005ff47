package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"booking-service/internal/model"
	"booking-service/internal/repository"
)

// In-memory store backing the fake repositories. txMu emulates the database
// row lock: every WithTx holds it for the whole transaction, so concurrent
// book attempts serialize exactly like they would on SELECT ... FOR UPDATE.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	slots    map[int64]*model.Slot
	bookings map[int64]*model.Booking
	users    map[int64]*model.User

	nextSlotID    int64
	nextBookingID int64
	nextUserID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[int64]*model.Slot),
		bookings: make(map[int64]*model.Booking),
		users:    make(map[int64]*model.User),
	}
}

func (s *fakeStore) addUser(name, email, hash string, role model.Role) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user := &model.User{
		ID:           s.nextUserID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	return user
}

type fakeSlotRepo struct{ store *fakeStore }

func (r *fakeSlotRepo) Create(_ context.Context, slot *model.Slot) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.slots {
		if existing.StartTime.Equal(slot.StartTime) && existing.EndTime.Equal(slot.EndTime) {
			return repository.ErrUniqueViolation
		}
		if existing.Overlaps(slot.StartTime, slot.EndTime) {
			return repository.ErrExclusionViolation
		}
	}
	s.nextSlotID++
	slot.ID = s.nextSlotID
	slot.CreatedAt = time.Now()
	stored := *slot
	s.slots[slot.ID] = &stored
	return nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*model.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (r *fakeSlotRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Slot, error) {
	// The transaction-wide txMu already serializes callers.
	return r.GetByID(ctx, id)
}

func (r *fakeSlotRepo) GetAll(_ context.Context) ([]*model.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := make([]*model.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		copied := *slot
		slots = append(slots, &copied)
	}
	return slots, nil
}

func (r *fakeSlotRepo) ExistsExact(_ context.Context, startTime, endTime time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.StartTime.Equal(startTime) && slot.EndTime.Equal(endTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSlotRepo) ExistsOverlapping(_ context.Context, startTime, endTime time.Time) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.Overlaps(startTime, endTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, id int64, status model.SlotStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return fmt.Errorf("slot %d not found", id)
	}
	slot.Status = status
	return nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.CreatedAt = time.Now()
	stored := *booking
	stored.Slot = nil
	s.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Booking, error) {
	// The transaction-wide txMu already serializes callers.
	return r.GetByID(ctx, id)
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*model.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var bookings []*model.Booking
	for _, booking := range s.bookings {
		if booking.UserID != userID {
			continue
		}
		copied := *booking
		if slot, ok := s.slots[booking.SlotID]; ok {
			slotCopy := *slot
			copied.Slot = &slotCopy
		}
		bookings = append(bookings, &copied)
	}
	return bookings, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status model.BookingStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %d not found", id)
	}
	booking.Status = status
	return nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrUniqueViolation
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	return user != nil, err
}

type fakeTxManager struct{ store *fakeStore }

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(ctx, repository.TxRepositories{
		Slots:    &fakeSlotRepo{store: m.store},
		Bookings: &fakeBookingRepo{store: m.store},
		Users:    &fakeUserRepo{store: m.store},
	})
}

var (
	_ repository.SlotRepository    = (*fakeSlotRepo)(nil)
	_ repository.BookingRepository = (*fakeBookingRepo)(nil)
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.TxManager         = (*fakeTxManager)(nil)
)
