// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	"github.com/f107110126/rpc-cap/internal/app"
	"github.com/f107110126/rpc-cap/internal/config"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// Dependencies bundles the use cases a command body needs.
type Dependencies struct {
	PermissionUseCase permissionUseCase.UseCase
	ApprovalUseCase   approvalUseCase.UseCase
	Logger            *slog.Logger
}

// WithContainer loads configuration, builds the DI container, resolves the
// command dependencies, runs fn, and shuts the container down.
func WithContainer(ctx context.Context, fn func(deps Dependencies) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	permissionUC, err := container.PermissionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize permission use case: %w", err)
	}

	approvalUC, err := container.ApprovalUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize approval use case: %w", err)
	}

	return fn(Dependencies{
		PermissionUseCase: permissionUC,
		ApprovalUseCase:   approvalUC,
		Logger:            logger,
	})
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// outputJSON writes a value as indented JSON.
func outputJSON(value any, writer io.Writer) {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(value)
}
