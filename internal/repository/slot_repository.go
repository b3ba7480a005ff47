package repository

import (
	"context"
	"fmt"
	"time"

	"booking-service/internal/model"
)

// SlotRepository is the persistence contract for slots. Implementations
// bound to a transaction (see TxManager) make GetByIDForUpdate meaningful.
type SlotRepository interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Slot, error)
	GetAll(ctx context.Context) ([]*model.Slot, error)
	ExistsExact(ctx context.Context, startTime, endTime time.Time) (bool, error)
	ExistsOverlapping(ctx context.Context, startTime, endTime time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status model.SlotStatus) error
}

type PgxSlotRepository struct {
	db Querier
}

func NewSlotRepository(db Querier) *PgxSlotRepository {
	return &PgxSlotRepository{db: db}
}

// Create inserts a new slot. Duplicate and overlapping intervals are also
// rejected by table constraints, so concurrent creates that slip past the
// service-level checks still surface ErrUniqueViolation/ErrExclusionViolation.
func (r *PgxSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (start_time, end_time, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, slot.StartTime, slot.EndTime, slot.Status).
		Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID gets a slot by ID. Returns nil when the slot does not exist.
func (r *PgxSlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate gets a slot by ID holding an exclusive row lock until the
// surrounding transaction commits or rolls back. Concurrent bookings of the
// same slot serialize on this lock.
func (r *PgxSlotRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Slot, error) {
	return r.getByID(ctx, id, true)
}

func (r *PgxSlotRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*model.Slot, error) {
	query := `
		SELECT id, start_time, end_time, status, created_at
		FROM slots
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var slot model.Slot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.CreatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		if mapped := mapPgError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// GetAll returns all slots ordered by start time.
func (r *PgxSlotRepository) GetAll(ctx context.Context) ([]*model.Slot, error) {
	query := `
		SELECT id, start_time, end_time, status, created_at
		FROM slots
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}

// ExistsExact checks for a slot with identical bounds.
func (r *PgxSlotRepository) ExistsExact(ctx context.Context, startTime, endTime time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE start_time = $1 AND end_time = $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, startTime, endTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check exact slot: %w", err)
	}

	return exists, nil
}

// ExistsOverlapping checks for any slot whose half-open interval intersects
// [startTime, endTime): newStart < existingEnd AND newEnd > existingStart.
func (r *PgxSlotRepository) ExistsOverlapping(ctx context.Context, startTime, endTime time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE $1 < end_time AND $2 > start_time
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, startTime, endTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlapping slot: %w", err)
	}

	return exists, nil
}

// UpdateStatus updates the slot status.
func (r *PgxSlotRepository) UpdateStatus(ctx context.Context, id int64, status model.SlotStatus) error {
	query := `
		UPDATE slots
		SET status = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update slot status: slot %d not found", id)
	}

	return nil
}

var _ SlotRepository = (*PgxSlotRepository)(nil)
