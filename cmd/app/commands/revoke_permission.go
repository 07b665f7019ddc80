package commands

import (
	"context"
	"fmt"
	"log/slog"

	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// RunRevokePermission revokes a domain's root permission on behalf of the
// user. Delegated permissions descending from the revoked grant become
// unresolvable lazily.
//
// Requirements: Database must be migrated and accessible (unless the memory
// driver is configured).
func RunRevokePermission(
	ctx context.Context,
	uc permissionUseCase.UseCase,
	logger *slog.Logger,
	domainID string,
	method string,
	format string,
	io IOTuple,
) error {
	logger.Info("revoking root permission",
		slog.String("domain", domainID),
		slog.String("method", method),
	)

	// A domain revoking its own permission matches the root grant; the
	// operator acts as the domain here.
	removed, err := uc.RevokeFrom(ctx, domainID, domainID, []string{method})
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}

	if format == "json" {
		outputJSON(removed, io.Writer)
	} else {
		for _, perm := range removed {
			_, _ = fmt.Fprintf(io.Writer, "Revoked %q from %q (id: %s)\n", perm.Method, domainID, perm.ID)
		}
	}

	logger.Info("permission revoked successfully",
		slog.String("domain", domainID),
		slog.String("method", method),
	)

	return nil
}
