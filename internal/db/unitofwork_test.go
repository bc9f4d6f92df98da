package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertTrip(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO trips (id, title, start_date, end_date, created_at, updated_at)
		VALUES (?, 'trip', '2026-05-01', '2026-05-01', 'now', 'now')`, id)
	return err
}

// tripExists reads through a separate transaction.
func tripExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE id = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertTrip(ctx, tx, "t1")
	})
	require.NoError(t, err)

	assert.True(t, tripExists(t, uow, "t1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("day write failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertTrip(ctx, tx, "t2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.False(t, tripExists(t, uow, "t2"), "trip should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertTrip(ctx, tx, "t3")
			panic("boom")
		})
	})

	assert.False(t, tripExists(t, uow, "t3"), "trip should not exist after panic rollback")
}

func TestWithinTx_OrdinaryErrorsAreNotReplayed(t *testing.T) {
	uow := openTestUoW(t)
	calls := 0

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		calls++
		return insertTrip(ctx, tx, "dup")
	})
	require.NoError(t, err)

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		calls++
		return insertTrip(ctx, tx, "dup")
	})
	require.Error(t, err)
	assert.False(t, db.IsBusy(err))
	assert.Equal(t, 2, calls)
}

func TestIsBusy(t *testing.T) {
	assert.False(t, db.IsBusy(nil))
	assert.False(t, db.IsBusy(errors.New("database is locked")), "only driver errors carry a code")
}

func TestOpenDB_PragmasApplyToEveryConnection(t *testing.T) {
	database, err := db.OpenDB(t.TempDir() + "/tripline.db")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	c1, err := database.Conn(ctx)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := database.Conn(ctx)
	require.NoError(t, err)
	defer c2.Close()

	for _, c := range []interface {
		QueryRowContext(context.Context, string, ...any) *sql.Row
	}{c1, c2} {
		var fk, timeout int
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
		assert.Equal(t, 1, fk)
		assert.Equal(t, db.BusyTimeoutMs, timeout)
	}
}
