package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

func snapshotFixture() *permissionDomain.EngineState {
	state := permissionDomain.NewEngineState()
	state.Domains["siteA"] = permissionDomain.DomainEntry{
		Permissions: []permissionDomain.Permission{
			{ID: "p1", Method: "write", Granter: permissionDomain.UserGranter, Date: 1700000000000},
		},
	}
	state.PermissionsRequests = append(state.PermissionsRequests, permissionDomain.PermissionsRequest{
		Origin:   "siteB",
		Metadata: permissionDomain.RequestMetadata{ID: "r1", Origin: "siteB"},
		Options:  permissionDomain.RequestedPermissions{"read": {}},
	})
	return state
}

func TestPostgreSQLSnapshotRepository_Load(t *testing.T) {
	t.Run("Success_LoadExistingSnapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		payload, err := json.Marshal(snapshotFixture())
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT state FROM engine_snapshots WHERE id = \$1`).
			WithArgs(snapshotRowID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(payload))

		repo := NewPostgreSQLSnapshotRepository(db)
		state, err := repo.Load(context.Background())

		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Len(t, state.Domains["siteA"].Permissions, 1)
		assert.Len(t, state.PermissionsRequests, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_NoSnapshotReturnsNil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(`SELECT state FROM engine_snapshots WHERE id = \$1`).
			WithArgs(snapshotRowID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}))

		repo := NewPostgreSQLSnapshotRepository(db)
		state, err := repo.Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("Error_CorruptPayload", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(`SELECT state FROM engine_snapshots WHERE id = \$1`).
			WithArgs(snapshotRowID).
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow([]byte("{not json")))

		repo := NewPostgreSQLSnapshotRepository(db)
		_, err = repo.Load(context.Background())

		assert.Error(t, err)
	})
}

func TestPostgreSQLSnapshotRepository_Save(t *testing.T) {
	t.Run("Success_UpsertsSnapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(`INSERT INTO engine_snapshots`).
			WithArgs(snapshotRowID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSnapshotRepository(db)
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

		repo := NewPostgreSQLSnapshotRepository(db)
		err = repo.Save(context.Background(), snapshotFixture())

		assert.Error(t, err)
	})
}
