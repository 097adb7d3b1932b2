package workflows

import (
	"time"

	"github.com/temporalio/temporal-restaurant/activities"
	"github.com/temporalio/temporal-restaurant/api"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const EstimateTimeout = 10 * time.Second

// Order prices a submitted order in kitchen time. It is registered under
// api.OrderWorkflowName and started by api.WorkflowSubmitter.
func Order(ctx workflow.Context, input *api.OrderWorkflowInput) (*api.OrderWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	if len(input.MenuIDs) == 0 {
		return nil, temporal.NewNonRetryableApplicationError(api.ErrEmptyOrder.Error(), activities.ErrTypeEmptyOrder, nil)
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: EstimateTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{activities.ErrTypeEmptyOrder, activities.ErrTypeUnknownMenuItem},
		},
	})

	var a *activities.Activities
	var estimate activities.EstimatePreparationTimeResult

	err := workflow.ExecuteActivity(ctx, a.EstimatePreparationTime, input).Get(ctx, &estimate)
	if err != nil {
		logger.Error("Unable to estimate preparation time", "Error", err)
		return nil, err
	}

	logger.Info("Order accepted", "Items", len(input.MenuIDs), "PreparationTime", estimate.Minutes)

	return &api.OrderWorkflowResult{PreparationTime: estimate.Minutes}, nil
}
