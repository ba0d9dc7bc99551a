//go:build unit

package uow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fieldbook/internal/infra"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePgxTx struct {
	commitErr error

	commits   int
	rollbacks int
	committed bool
}

func (t *fakePgxTx) Commit(context.Context) error {
	t.commits++
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakePgxTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rollbacks++
	return nil
}

func (t *fakePgxTx) Begin(context.Context) (pgx.Tx, error) { panic("not used") }
func (t *fakePgxTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not used")
}
func (t *fakePgxTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { panic("not used") }
func (t *fakePgxTx) LargeObjects() pgx.LargeObjects                         { panic("not used") }
func (t *fakePgxTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("not used")
}
func (t *fakePgxTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakePgxTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (t *fakePgxTx) QueryRow(context.Context, string, ...any) pgx.Row { return noRow{} }
func (t *fakePgxTx) Conn() *pgx.Conn                                  { return nil }

// fakeStarter hands out one fakePgxTx per BeginTx call, with commit errors
// assigned in order.
type fakeStarter struct {
	beginErr   error
	commitErrs []error

	txs []*fakePgxTx
}

func (s *fakeStarter) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	tx := &fakePgxTx{}
	if len(s.txs) < len(s.commitErrs) {
		tx.commitErr = s.commitErrs[len(s.txs)]
	}
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *fakeStarter) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (s *fakeStarter) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}
func (s *fakeStarter) QueryRow(context.Context, string, ...any) pgx.Row { return noRow{} }

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func serializationFailure() error {
	return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
}

func TestWithin(t *testing.T) {
	t.Run("commits once on success", func(t *testing.T) {
		starter := &fakeStarter{}
		u := &PostgresUoW{pool: starter}

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return nil
		})

		require.NoError(t, err)
		require.Len(t, starter.txs, 1)
		assert.Equal(t, 1, starter.txs[0].commits)
		assert.Equal(t, 0, starter.txs[0].rollbacks)
	})

	t.Run("rolls back exactly once when the callback fails", func(t *testing.T) {
		starter := &fakeStarter{}
		u := &PostgresUoW{pool: starter}
		boom := errors.New("boom")

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return boom
		})

		require.ErrorIs(t, err, boom)
		require.Len(t, starter.txs, 1)
		assert.Equal(t, 0, starter.txs[0].commits)
		assert.Equal(t, 1, starter.txs[0].rollbacks)
	})

	t.Run("marks a non-retryable commit failure", func(t *testing.T) {
		starter := &fakeStarter{commitErrs: []error{errors.New("connection lost")}}
		u := &PostgresUoW{pool: starter}

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return nil
		})

		require.ErrorIs(t, err, errTransactionCommit)
		require.Len(t, starter.txs, 1)
		assert.Equal(t, 1, starter.txs[0].rollbacks)
	})

	t.Run("retries a serialization failure from the callback", func(t *testing.T) {
		starter := &fakeStarter{}
		u := &PostgresUoW{pool: starter}

		calls := 0
		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			calls++
			if calls == 1 {
				return serializationFailure()
			}
			return nil
		})

		require.NoError(t, err)
		require.Len(t, starter.txs, 2)
		assert.Equal(t, 1, starter.txs[0].rollbacks)
		assert.Equal(t, 1, starter.txs[1].commits)
	})

	t.Run("retries a serialization failure at commit", func(t *testing.T) {
		starter := &fakeStarter{commitErrs: []error{serializationFailure()}}
		u := &PostgresUoW{pool: starter}

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return nil
		})

		require.NoError(t, err)
		require.Len(t, starter.txs, 2)
		assert.True(t, starter.txs[1].committed)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		starter := &fakeStarter{}
		u := &PostgresUoW{pool: starter}

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return serializationFailure()
		})

		require.ErrorIs(t, err, errMaxRetriesExceeded)
		require.Len(t, starter.txs, 4)
		for _, tx := range starter.txs {
			assert.Equal(t, 1, tx.rollbacks)
		}
	})

	t.Run("stops retrying when the context expires", func(t *testing.T) {
		starter := &fakeStarter{}
		u := &PostgresUoW{pool: starter}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := u.Within(ctx, func(context.Context, shared.Tx) error {
			return serializationFailure()
		})

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Len(t, starter.txs, 1)
	})

	t.Run("wraps a begin failure", func(t *testing.T) {
		starter := &fakeStarter{beginErr: errors.New("pool exhausted")}
		u := &PostgresUoW{pool: starter}

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			return nil
		})

		require.ErrorIs(t, err, errTransactionBegin)
	})
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: pgErrCodeSerializationFailure}, true},
		{"deadlock detected", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		wait := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, wait)
		assert.Less(t, got, wait+wait/5)
	}
}

// The pool-backed instance is shared across request goroutines, so every
// lookup must be safe to call concurrently.
func TestCommandReadsConcurrent(t *testing.T) {
	reads := newCommandReads(&fakeStarter{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := reads.ResourceByID(context.Background(), uuid.New())
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
				_, err = reads.BookingByID(context.Background(), uuid.New())
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
				_, err = reads.InvoiceByBookingID(context.Background(), uuid.New())
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
			}
		}()
	}
	wg.Wait()
}
