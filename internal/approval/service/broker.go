// Package service provides the production approver implementation.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	approvalDomain "github.com/f107110126/rpc-cap/internal/approval/domain"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// decision is the outcome delivered to a waiting approval flow.
type decision struct {
	approved permissionDomain.RequestedPermissions
	rejected bool
	reason   string
}

// DecisionBroker bridges the synchronous approval flow with asynchronous user
// decisions. Approve parks the calling goroutine on a channel keyed by the
// request id until Decide or Reject is called (typically from the admin HTTP
// surface), the optional timeout elapses, the caller's context is cancelled,
// or the broker shuts down.
type DecisionBroker struct {
	mu      sync.Mutex
	waiters map[string]chan decision
	closed  bool
	timeout time.Duration
	logger  *slog.Logger
}

// NewDecisionBroker creates a broker. A zero timeout waits indefinitely.
func NewDecisionBroker(timeout time.Duration, logger *slog.Logger) *DecisionBroker {
	return &DecisionBroker{
		waiters: make(map[string]chan decision),
		timeout: timeout,
		logger:  logger,
	}
}

// Approve blocks until a decision arrives for the request.
func (b *DecisionBroker) Approve(
	ctx context.Context,
	request *permissionDomain.PermissionsRequest,
) (permissionDomain.RequestedPermissions, error) {
	requestID := request.Metadata.ID

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, approvalDomain.ErrBrokerClosed
	}
	ch := make(chan decision, 1)
	b.waiters[requestID] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.waiters, requestID)
		b.mu.Unlock()
	}()

	b.logger.Info("awaiting user decision",
		slog.String("request_id", requestID),
		slog.String("origin", request.Origin),
		slog.Int("method_count", len(request.Options)),
	)

	var timeoutCh <-chan time.Time
	if b.timeout > 0 {
		timer := time.NewTimer(b.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case d := <-ch:
		if d.rejected {
			b.logger.Info("user rejected the request",
				slog.String("request_id", requestID),
				slog.String("reason", d.reason),
			)
			return nil, approvalDomain.ErrUserRejected
		}
		return d.approved, nil
	case <-timeoutCh:
		b.logger.Warn("user decision timed out", slog.String("request_id", requestID))
		return nil, approvalDomain.ErrDecisionTimeout
	case <-ctx.Done():
		return nil, approvalDomain.ErrDecisionTimeout
	}
}

// Decide delivers an approval for the pending request. An empty approved map
// is a rejection. Returns ErrRequestNotFound when no flow is waiting on the
// id.
func (b *DecisionBroker) Decide(
	requestID string,
	approved permissionDomain.RequestedPermissions,
) error {
	return b.deliver(requestID, decision{approved: approved})
}

// Reject delivers a rejection with an optional reason.
func (b *DecisionBroker) Reject(requestID, reason string) error {
	return b.deliver(requestID, decision{rejected: true, reason: reason})
}

// Shutdown rejects all waiting flows and refuses new ones.
func (b *DecisionBroker) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for requestID, ch := range b.waiters {
		select {
		case ch <- decision{rejected: true, reason: "shutdown"}:
		default:
		}
		delete(b.waiters, requestID)
	}
}

func (b *DecisionBroker) deliver(requestID string, d decision) error {
	b.mu.Lock()
	ch, ok := b.waiters[requestID]
	if ok {
		delete(b.waiters, requestID)
	}
	b.mu.Unlock()

	if !ok {
		return approvalDomain.ErrRequestNotFound
	}

	// The channel is buffered; a second delivery for the same id cannot
	// happen because the waiter is removed above.
	ch <- d
	return nil
}
