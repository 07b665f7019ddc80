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

// snapshotRowID is the fixed primary key of the single snapshot row.
const snapshotRowID = 1

// PostgreSQLSnapshotRepository persists serialized engine-state snapshots in
// PostgreSQL. The state is stored as a single JSONB row that is upserted on
// every change notification.
type PostgreSQLSnapshotRepository struct {
	db *sql.DB
}

// NewPostgreSQLSnapshotRepository creates a new PostgreSQL snapshot repository.
func NewPostgreSQLSnapshotRepository(db *sql.DB) *PostgreSQLSnapshotRepository {
	return &PostgreSQLSnapshotRepository{db: db}
}

// Load retrieves the persisted engine state. Returns (nil, nil) when no
// snapshot has been saved yet (fresh install).
func (p *PostgreSQLSnapshotRepository) Load(ctx context.Context) (*permissionDomain.EngineState, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT state FROM engine_snapshots WHERE id = $1`

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
func (p *PostgreSQLSnapshotRepository) Save(ctx context.Context, state *permissionDomain.EngineState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode engine snapshot")
	}

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO engine_snapshots (id, state, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (id) DO UPDATE SET state = $2, updated_at = $3`

	_, err = querier.ExecContext(ctx, query, snapshotRowID, payload, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to save engine snapshot")
	}
	return nil
}
