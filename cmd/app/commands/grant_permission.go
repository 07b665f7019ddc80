package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// RunGrantPermission issues a root permission to a domain on behalf of the
// user, bypassing the interactive approval flow. This is the operator path
// for provisioning access ahead of time.
//
// Requirements: Database must be migrated and accessible (unless the memory
// driver is configured).
func RunGrantPermission(
	ctx context.Context,
	uc permissionUseCase.UseCase,
	logger *slog.Logger,
	domainID string,
	method string,
	caveatsJSON string,
	format string,
	io IOTuple,
) error {
	logger.Info("granting root permission",
		slog.String("domain", domainID),
		slog.String("method", method),
	)

	var caveats []permissionDomain.Caveat
	if caveatsJSON != "" {
		if err := json.Unmarshal([]byte(caveatsJSON), &caveats); err != nil {
			return fmt.Errorf("failed to parse caveats JSON: %w", err)
		}
	}

	perms, err := uc.Add(ctx, domainID, []permissionDomain.Permission{
		{
			Method:  method,
			Granter: permissionDomain.UserGranter,
			Caveats: caveats,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}

	if format == "json" {
		outputJSON(perms, io.Writer)
	} else {
		for _, perm := range perms {
			_, _ = fmt.Fprintf(io.Writer, "Granted %q to %q (id: %s)\n", perm.Method, domainID, perm.ID)
		}
	}

	logger.Info("permission granted successfully",
		slog.String("domain", domainID),
		slog.String("method", method),
	)

	return nil
}
