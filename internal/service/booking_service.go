package service

import (
	"context"
	"errors"
	"fmt"

	"booking-service/internal/model"
	"booking-service/internal/notify"
	"booking-service/internal/repository"
	"go.uber.org/zap"
)

// BookingService performs the book/cancel state transitions. Both run inside
// a single transaction; BookSlot additionally holds an exclusive row lock on
// the slot so that check-then-act happens entirely within the critical
// section. At most one active booking can exist per slot, regardless of how
// many requests race for it.
type BookingService struct {
	txManager   repository.TxManager
	bookingRepo repository.BookingRepository
	notifier    notify.Notifier
	logger      *zap.Logger
}

func NewBookingService(
	txManager repository.TxManager,
	bookingRepo repository.BookingRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// BookSlot books the slot for the user. The slot row is locked before its
// status is read, so concurrent bookings of the same slot serialize at the
// database; exactly one of them observes status available.
func (s *BookingService) BookSlot(ctx context.Context, slotID, userID int64) (*model.Booking, error) {
	var booking *model.Booking

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		slot, err := repos.Slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			if errors.Is(err, repository.ErrLockNotAvailable) {
				return ErrLockTimeout
			}
			return fmt.Errorf("lock slot: %w", err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		// Checked only after the lock is held.
		if slot.Status == model.SlotStatusBooked {
			return ErrSlotAlreadyBooked
		}

		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}

		booking = &model.Booking{
			UserID: user.ID,
			SlotID: slot.ID,
			Status: model.BookingStatusActive,
		}

		if err := repos.Bookings.Create(ctx, booking); err != nil {
			return err
		}

		if err := repos.Slots.UpdateStatus(ctx, slot.ID, model.SlotStatusBooked); err != nil {
			return err
		}

		slot.Status = model.SlotStatusBooked
		booking.Slot = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("slot_id", slotID),
		zap.Int64("user_id", userID),
	)

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.BookingCreated(ctx, booking)
	})

	return booking, nil
}

// CancelBooking cancels the booking and frees its slot in one transaction.
// The booking row is locked before its status is read, so concurrent cancels
// of the same booking serialize at the database; a cancel that loses the race
// observes the committed canceled status instead of a stale snapshot.
// Non-admin requesters may cancel only their own bookings. Canceling an
// already canceled booking is rejected rather than treated as a no-op: the
// booking is terminal and its slot may have been re-booked since, so a second
// cancel must never flip the slot back to available.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, requesterID int64, isAdmin bool) error {
	var canceled *model.Booking

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		booking, err := repos.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrLockNotAvailable) {
				return ErrLockTimeout
			}
			return fmt.Errorf("lock booking: %w", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		if !isAdmin && booking.UserID != requesterID {
			return ErrNotBookingOwner
		}

		// Checked only after the lock is held.
		if booking.Status == model.BookingStatusCanceled {
			return ErrBookingAlreadyCanceled
		}

		if err := repos.Bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusCanceled); err != nil {
			return err
		}

		if err := repos.Slots.UpdateStatus(ctx, booking.SlotID, model.SlotStatusAvailable); err != nil {
			return err
		}

		booking.Status = model.BookingStatusCanceled
		canceled = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking canceled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("requester_id", requesterID),
		zap.Bool("is_admin", isAdmin),
	)

	s.notify(ctx, func(ctx context.Context) error {
		return s.notifier.BookingCanceled(ctx, canceled)
	})

	return nil
}

// GetUserBookings returns all bookings of the user.
func (s *BookingService) GetUserBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	return s.bookingRepo.GetByUserID(ctx, userID)
}

// notify runs fn after a successful commit. Notification failures are logged,
// never surfaced to the caller.
func (s *BookingService) notify(ctx context.Context, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		s.logger.Warn("Notification failed", zap.Error(err))
	}
}
