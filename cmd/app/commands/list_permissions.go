package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// RunListPermissions prints a domain's permission list.
func RunListPermissions(
	ctx context.Context,
	uc permissionUseCase.UseCase,
	logger *slog.Logger,
	domainID string,
	format string,
	io IOTuple,
) error {
	perms, err := uc.List(ctx, domainID)
	if err != nil {
		return fmt.Errorf("failed to list permissions: %w", err)
	}

	if format == "json" {
		outputJSON(perms, io.Writer)
		return nil
	}

	if len(perms) == 0 {
		_, _ = fmt.Fprintf(io.Writer, "No permissions for %q\n", domainID)
		return nil
	}

	_, _ = fmt.Fprintf(io.Writer, "Permissions for %q:\n", domainID)
	for _, perm := range perms {
		created := time.UnixMilli(perm.Date).UTC().Format(time.RFC3339)
		_, _ = fmt.Fprintf(io.Writer, "  %s  granter=%s  caveats=%d  created=%s  id=%s\n",
			perm.Method, perm.Granter, len(perm.Caveats), created, perm.ID)
	}

	return nil
}
