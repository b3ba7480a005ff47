package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-service/internal/model"
	"booking-service/internal/repository"
	"go.uber.org/zap"
)

type SlotService struct {
	slotRepo repository.SlotRepository
	logger   *zap.Logger
}

func NewSlotService(slotRepo repository.SlotRepository, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// CreateSlot validates and persists a new slot with status available.
// Rejected when the interval is inverted, duplicates an existing slot, or
// overlaps one under half-open semantics. The checks here are best-effort
// across concurrent creates; the table constraints close that race and the
// resulting errors are translated to the same taxonomy.
func (s *SlotService) CreateSlot(ctx context.Context, startTime, endTime time.Time) (*model.Slot, error) {
	if !startTime.Before(endTime) {
		return nil, ErrInvalidInterval
	}

	exists, err := s.slotRepo.ExistsExact(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("check duplicate slot: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSlot
	}

	overlaps, err := s.slotRepo.ExistsOverlapping(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("check overlapping slot: %w", err)
	}
	if overlaps {
		return nil, ErrOverlappingSlot
	}

	slot := &model.Slot{
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.SlotStatusAvailable,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		switch {
		case errors.Is(err, repository.ErrUniqueViolation):
			return nil, ErrDuplicateSlot
		case errors.Is(err, repository.ErrExclusionViolation):
			return nil, ErrOverlappingSlot
		}
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Time("start_time", slot.StartTime),
		zap.Time("end_time", slot.EndTime),
	)

	return slot, nil
}

// GetAllSlots returns all slots.
func (s *SlotService) GetAllSlots(ctx context.Context) ([]*model.Slot, error) {
	return s.slotRepo.GetAll(ctx)
}
