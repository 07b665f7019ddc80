package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/f107110126/rpc-cap/internal/database"
	apperrors "github.com/f107110126/rpc-cap/internal/errors"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// MySQLSnapshotRepository persists serialized engine-state snapshots in
// MySQL. The state is stored as a single JSON row that is upserted on every
// change notification.
type MySQLSnapshotRepository struct {
	db *sql.DB
}

// NewMySQLSnapshotRepository creates a new MySQL snapshot repository.
func NewMySQLSnapshotRepository(db *sql.DB) *MySQLSnapshotRepository {
	return &MySQLSnapshotRepository{db: db}
}

// Load retrieves the persisted engine state. Returns (nil, nil) when no
// snapshot has been saved yet (fresh install).
func (m *MySQLSnapshotRepository) Load(ctx context.Context) (*permissionDomain.EngineState, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT state FROM engine_snapshots WHERE id = ?`

	var payload []byte
	err := querier.QueryRowContext(ctx, query, snapshotRowID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to load engine snapshot")
	}

	var state permissionDomain.EngineState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode engine snapshot")
	}

	return &state, nil
}

// Save upserts the engine state snapshot.
func (m *MySQLSnapshotRepository) Save(ctx context.Context, state *permissionDomain.EngineState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode engine snapshot")
	}

	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO engine_snapshots (id, state, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE state = VALUES(state), updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(ctx, query, snapshotRowID, payload, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to save engine snapshot")
	}
	return nil
}
