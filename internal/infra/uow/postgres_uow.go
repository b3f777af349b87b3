// Package uow implements the unit of work over pgx. The admission path is the
// one place that needs true mutual exclusion across server instances, so it
// takes a transaction-scoped advisory lock keyed by (pricing, date) before
// touching capacity, and retries serialization failures like every other
// write path.
package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/Arman-Arzoo/headout-backend/internal/infra/db"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/readstore"
	"github.com/Arman-Arzoo/headout-backend/internal/infra/repository"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/apperr"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/config"
	"github.com/Arman-Arzoo/headout-backend/internal/pkg/errs"
	"github.com/Arman-Arzoo/headout-backend/internal/usecase/shared"

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
	pool             *pgxpool.Pool
	admissionTimeout time.Duration
	writeTimeout     time.Duration
	maxRetries       int
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.BookingConfig) shared.UnitOfWork {
	return &PostgresUoW{
		pool:             pool,
		admissionTimeout: cfg.AdmissionTimeout,
		writeTimeout:     cfg.WriteTimeout,
		maxRetries:       cfg.MaxRetries,
	}
}

func (u *PostgresUoW) WithinAdmission(ctx context.Context, key shared.AdmissionKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, u.admissionTimeout, func(ctx context.Context, tx shared.Tx) error {
		if err := lockAdmissionKey(ctx, tx.DB(), key); err != nil {
			return err
		}
		return fn(ctx, tx)
	})
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, u.writeTimeout, fn)
}

// lockAdmissionKey serializes admissions per (pricing, date). The lock is
// transaction-scoped, so commit or rollback releases it.
func lockAdmissionKey(ctx context.Context, dbtx db.DBTX, key shared.AdmissionKey) error {
	lockKey := key.PricingID.String() + "/" + key.Date.Format(time.DateOnly)
	if _, err := dbtx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", lockKey); err != nil {
		return errs.Wrap(err, "failed to acquire admission lock")
	}
	return nil
}

// Avoids defer accumulation in retry loops to prevent connection leaks.
func (u *PostgresUoW) runInTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, tx shared.Tx) error) error {
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		txCtx, cancel := context.WithTimeout(ctx, timeout)
		err := u.runOnce(txCtx, fn)
		cancel()
		if err == nil {
			return nil
		}

		// user-correctable failures are never retried
		if _, ok := apperr.KindOf(err); ok {
			return err
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == u.maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := calculateBackoff(attempt, base)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	tx := &pgTx{dbtx: pgxTx}

	err = fn(ctx, tx)
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
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
	dbtx db.DBTX

	// Lazy-initialized accessors
	bookingRepo  shared.BookingRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository()
	}
	return t.bookingRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = readstore.NewCommandReads()
	}
	return t.commandReads
}
