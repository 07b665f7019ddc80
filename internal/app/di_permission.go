package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionHTTP "github.com/f107110126/rpc-cap/internal/permission/http"
	permissionRepository "github.com/f107110126/rpc-cap/internal/permission/repository"
	permissionService "github.com/f107110126/rpc-cap/internal/permission/service"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// snapshotSaveTimeout bounds one persistence write triggered by a state
// change notification.
const snapshotSaveTimeout = 5 * time.Second

// SnapshotRepository returns the snapshot repository based on database
// driver, or nil for the in-memory driver.
func (c *Container) SnapshotRepository() (permissionUseCase.SnapshotRepository, error) {
	var err error
	c.snapshotRepoInit.Do(func() {
		c.snapshotRepo, err = c.initSnapshotRepository()
		if err != nil {
			c.initErrors["snapshotRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["snapshotRepo"]; exists {
		return nil, storedErr
	}
	return c.snapshotRepo, nil
}

// StateStore returns the observable engine state store, rehydrated from the
// last persisted snapshot and wired to persist every subsequent change.
func (c *Container) StateStore() (*permissionRepository.StateStore, error) {
	var err error
	c.stateStoreInit.Do(func() {
		c.stateStore, err = c.initStateStore()
		if err != nil {
			c.initErrors["stateStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stateStore"]; exists {
		return nil, storedErr
	}
	return c.stateStore, nil
}

// PermissionUseCase returns the permission use case.
func (c *Container) PermissionUseCase() (permissionUseCase.UseCase, error) {
	var err error
	c.permissionUCInit.Do(func() {
		c.permissionUC, err = c.initPermissionUseCase()
		if err != nil {
			c.initErrors["permissionUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["permissionUC"]; exists {
		return nil, storedErr
	}
	return c.permissionUC, nil
}

// PermissionHandler returns the HTTP handler for permission inspection.
func (c *Container) PermissionHandler() (*permissionHTTP.PermissionHandler, error) {
	var err error
	c.permissionHandlerInit.Do(func() {
		c.permissionHandler, err = c.initPermissionHandler()
		if err != nil {
			c.initErrors["permissionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["permissionHandler"]; exists {
		return nil, storedErr
	}
	return c.permissionHandler, nil
}

// initSnapshotRepository creates the snapshot repository based on the database driver.
func (c *Container) initSnapshotRepository() (permissionUseCase.SnapshotRepository, error) {
	// The in-memory driver runs without persistence; state lives only for
	// the process lifetime.
	if c.config.DBDriver == "memory" {
		return nil, nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for snapshot repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return permissionRepository.NewPostgreSQLSnapshotRepository(db), nil
	case "mysql":
		return permissionRepository.NewMySQLSnapshotRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStateStore loads the persisted snapshot (if any) and subscribes the
// snapshot repository to state changes.
func (c *Container) initStateStore() (*permissionRepository.StateStore, error) {
	logger := c.Logger()

	snapshotRepo, err := c.SnapshotRepository()
	if err != nil {
		return nil, err
	}

	var initState *permissionDomain.EngineState
	if snapshotRepo != nil {
		loadCtx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
		defer cancel()

		initState, err = snapshotRepo.Load(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to load engine snapshot: %w", err)
		}
		if initState != nil {
			logger.Info("engine state rehydrated from snapshot",
				slog.Int("domain_count", len(initState.Domains)),
				slog.Int("pending_request_count", len(initState.PermissionsRequests)),
			)
		}
	}

	store := permissionRepository.NewStateStore(initState)

	if snapshotRepo != nil {
		store.Subscribe(func(state *permissionDomain.EngineState) {
			saveCtx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
			defer cancel()

			if err := snapshotRepo.Save(saveCtx, state); err != nil {
				logger.Error("failed to persist engine snapshot", slog.Any("error", err))
			}
		})
	}

	return store, nil
}

// initPermissionUseCase creates the permission use case with all its dependencies.
func (c *Container) initPermissionUseCase() (permissionUseCase.UseCase, error) {
	store, err := c.StateStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get state store for permission use case: %w", err)
	}

	baseUseCase := permissionUseCase.NewPermissionUseCase(
		store,
		permissionService.NewUUIDSource(),
		permissionService.NewUTCClock(),
		c.config.DelegationDepthLimit,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for permission use case: %w", err)
		}
		return permissionUseCase.NewPermissionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPermissionHandler creates the permission HTTP handler with all its dependencies.
func (c *Container) initPermissionHandler() (*permissionHTTP.PermissionHandler, error) {
	permissionUC, err := c.PermissionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission use case for permission handler: %w", err)
	}

	return permissionHTTP.NewPermissionHandler(permissionUC, c.Logger()), nil
}
