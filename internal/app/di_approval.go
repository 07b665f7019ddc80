package app

import (
	"fmt"

	approvalHTTP "github.com/f107110126/rpc-cap/internal/approval/http"
	approvalService "github.com/f107110126/rpc-cap/internal/approval/service"
	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	permissionService "github.com/f107110126/rpc-cap/internal/permission/service"
)

// DecisionBroker returns the broker bridging approval flows with user decisions.
func (c *Container) DecisionBroker() *approvalService.DecisionBroker {
	c.brokerInit.Do(func() {
		c.broker = approvalService.NewDecisionBroker(c.config.ApprovalTimeout, c.Logger())
	})
	return c.broker
}

// ApprovalUseCase returns the approval use case.
func (c *Container) ApprovalUseCase() (approvalUseCase.UseCase, error) {
	var err error
	c.approvalUCInit.Do(func() {
		c.approvalUC, err = c.initApprovalUseCase()
		if err != nil {
			c.initErrors["approvalUC"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["approvalUC"]; exists {
		return nil, storedErr
	}
	return c.approvalUC, nil
}

// ApprovalHandler returns the HTTP handler for approval administration.
func (c *Container) ApprovalHandler() (*approvalHTTP.ApprovalHandler, error) {
	var err error
	c.approvalHandlerInit.Do(func() {
		c.approvalHandler, err = c.initApprovalHandler()
		if err != nil {
			c.initErrors["approvalHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["approvalHandler"]; exists {
		return nil, storedErr
	}
	return c.approvalHandler, nil
}

// initApprovalUseCase creates the approval use case with all its dependencies.
func (c *Container) initApprovalUseCase() (approvalUseCase.UseCase, error) {
	store, err := c.StateStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get state store for approval use case: %w", err)
	}

	permissionUC, err := c.PermissionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission use case for approval use case: %w", err)
	}

	useCaseConfig := approvalUseCase.Config{
		RetainRejected: c.config.ApprovalRetainRejected,
	}

	baseUseCase, err := approvalUseCase.NewApprovalUseCase(
		useCaseConfig,
		store,
		permissionUC,
		c.DecisionBroker(),
		permissionService.NewUUIDSource(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create approval use case: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for approval use case: %w", err)
		}
		return approvalUseCase.NewApprovalUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initApprovalHandler creates the approval HTTP handler with all its dependencies.
func (c *Container) initApprovalHandler() (*approvalHTTP.ApprovalHandler, error) {
	approvalUC, err := c.ApprovalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get approval use case for approval handler: %w", err)
	}

	return approvalHTTP.NewApprovalHandler(approvalUC, c.DecisionBroker(), c.Logger()), nil
}
