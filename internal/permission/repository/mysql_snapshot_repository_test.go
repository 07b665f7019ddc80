package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLSnapshotRepository_Load(t *testing.T) {
	t.Run("Success_LoadExistingSnapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		payload, err := json.Marshal(snapshotFixture())
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT state FROM engine_snapshots WHERE id = \?`).
			WithArgs(snapshotRowID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(payload))

		repo := NewMySQLSnapshotRepository(db)
		state, err := repo.Load(context.Background())

		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Len(t, state.Domains["siteA"].Permissions, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_NoSnapshotReturnsNil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(`SELECT state FROM engine_snapshots WHERE id = \?`).
			WithArgs(snapshotRowID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}))

		repo := NewMySQLSnapshotRepository(db)
		state, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, state)
	})
}

func TestMySQLSnapshotRepository_Save(t *testing.T) {
	t.Run("Success_UpsertsSnapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(`INSERT INTO engine_snapshots`).
			WithArgs(snapshotRowID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLSnapshotRepository(db)
		err = repo.Save(context.Background(), snapshotFixture())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(`INSERT INTO engine_snapshots`).
			WillReturnError(assert.AnError)

		repo := NewMySQLSnapshotRepository(db)
		err = repo.Save(context.Background(), snapshotFixture())

		assert.Error(t, err)
	})
}
