package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
)

// RunListApprovals prints the pending permission requests.
func RunListApprovals(
	ctx context.Context,
	uc approvalUseCase.UseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	pending, err := uc.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending requests: %w", err)
	}

	if format == "json" {
		outputJSON(pending, io.Writer)
		return nil
	}

	if len(pending) == 0 {
		_, _ = fmt.Fprintln(io.Writer, "No pending permission requests")
		return nil
	}

	_, _ = fmt.Fprintf(io.Writer, "Pending permission requests (%d):\n", len(pending))
	for _, req := range pending {
		methods := make([]string, 0, len(req.Options))
		for method := range req.Options {
			methods = append(methods, method)
		}
		_, _ = fmt.Fprintf(io.Writer, "  %s  origin=%s  methods=%s\n",
			req.Metadata.ID, req.Origin, strings.Join(methods, ","))
	}

	return nil
}
