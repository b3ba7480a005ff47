package repository

import (
	"context"
	"fmt"

	"booking-service/internal/model"
)

// BookingRepository is the persistence contract for bookings. Implementations
// bound to a transaction (see TxManager) make GetByIDForUpdate meaningful.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
}

type PgxBookingRepository struct {
	db Querier
}

func NewBookingRepository(db Querier) *PgxBookingRepository {
	return &PgxBookingRepository{db: db}
}

// Create inserts a new booking.
func (r *PgxBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (user_id, slot_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, booking.UserID, booking.SlotID, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID gets a booking by ID. Returns nil when the booking does not exist.
func (r *PgxBookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate gets a booking by ID holding an exclusive row lock until
// the surrounding transaction commits or rolls back. Concurrent cancellations
// of the same booking serialize on this lock.
func (r *PgxBookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *PgxBookingRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*model.Booking, error) {
	query := `
		SELECT id, user_id, slot_id, status, created_at
		FROM bookings
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var booking model.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// GetByUserID returns all bookings of one user, newest first, with the
// referenced slot attached.
func (r *PgxBookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.status, b.created_at,
		       s.id, s.start_time, s.end_time, s.status, s.created_at
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		var slot model.Slot
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.Status,
			&booking.CreatedAt,
			&slot.ID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		booking.Slot = &slot
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus updates the booking status.
func (r *PgxBookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update booking status: booking %d not found", id)
	}

	return nil
}

var _ BookingRepository = (*PgxBookingRepository)(nil)
