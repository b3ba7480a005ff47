package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRepositories bundles transaction-bound repositories handed to WithTx callbacks.
type TxRepositories struct {
	Slots    SlotRepository
	Bookings BookingRepository
	Users    UserRepository
}

// TxManager runs a function inside a single database transaction.
// Every statement issued through the provided repositories commits or
// rolls back as one unit; any error from fn rolls the transaction back.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type PgxTxManager struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPgxTxManager(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxTxManager {
	return &PgxTxManager{pool: pool, lockTimeout: lockTimeout}
}

func (m *PgxTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if m.lockTimeout > 0 {
		// Bound row-lock waits so contended bookings fail fast instead of
		// queueing forever. SET LOCAL reverts at transaction end.
		_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds()))
		if err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	repos := TxRepositories{
		Slots:    NewSlotRepository(tx),
		Bookings: NewBookingRepository(tx),
		Users:    NewUserRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
