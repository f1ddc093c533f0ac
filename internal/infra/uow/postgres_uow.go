package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"tablebook/internal/infra/repository"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// FOR UPDATE recheck in the reservation repository supplies the row-level
// serialization the booking flow needs.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx})
		if err != nil {
			if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
			if isRetryableError(err) && attempt < maxRetries {
				sleepWithJitter(ctx, base<<uint(attempt))
				continue
			}
			return err
		}

		if err := pgxTx.Commit(ctx); err != nil {
			if isRetryableError(err) && attempt < maxRetries {
				sleepWithJitter(ctx, base<<uint(attempt))
				continue
			}
			return errs.Mark(err, errTransactionCommit)
		}
		return nil
	}
	return errMaxRetriesExceeded
}

func sleepWithJitter(ctx context.Context, d time.Duration) {
	jittered := d + time.Duration(randomInt64(int64(d/2)))
	select {
	case <-ctx.Done():
	case <-time.After(jittered):
	}
}

func randomInt64(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}
