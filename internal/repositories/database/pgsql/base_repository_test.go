package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/repositories/database/pgsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx fakes the commit/rollback half of pgx.Tx; everything else panics if
// touched.
type stubTx struct {
	pgx.Tx
	commitErr   error
	rollbackErr error
}

func (t *stubTx) Commit(ctx context.Context) error   { return t.commitErr }
func (t *stubTx) Rollback(ctx context.Context) error { return t.rollbackErr }

func TestCommit_Success(t *testing.T) {
	r := &pgsql.BaseRepository{}
	assert.NoError(t, r.Commit(context.Background(), &stubTx{}))
}

func TestCommit_WrapsFailure(t *testing.T) {
	r := &pgsql.BaseRepository{}
	cause := errors.New("connection reset")

	err := r.Commit(context.Background(), &stubTx{commitErr: cause})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.ErrorIs(t, err, cause)
}

func TestRollback_IgnoresFinishedTransaction(t *testing.T) {
	r := &pgsql.BaseRepository{}
	assert.NoError(t, r.Rollback(context.Background(), &stubTx{rollbackErr: sql.ErrTxDone}))
}

func TestRollback_WrapsFailure(t *testing.T) {
	r := &pgsql.BaseRepository{}
	cause := errors.New("connection reset")

	err := r.Rollback(context.Background(), &stubTx{rollbackErr: cause})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
