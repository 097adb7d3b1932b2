package activities

import (
	"context"
	"errors"

	"github.com/temporalio/temporal-restaurant/api"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

const (
	ErrTypeEmptyOrder      = "EmptyOrder"
	ErrTypeUnknownMenuItem = "UnknownMenuItem"
)

type Activities struct {
	Catalog *api.Catalog
}

type EstimatePreparationTimeResult struct {
	Minutes int
}

func (a *Activities) EstimatePreparationTime(ctx context.Context, input *api.OrderWorkflowInput) (*EstimatePreparationTimeResult, error) {
	minutes, err := a.Catalog.PreparationTime(input.MenuIDs)
	switch {
	case errors.Is(err, api.ErrEmptyOrder):
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeEmptyOrder, err)
	case errors.Is(err, api.ErrUnknownMenuItem):
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeUnknownMenuItem, err)
	case err != nil:
		return nil, err
	}

	activity.GetLogger(ctx).Info("Estimated preparation time", "Items", len(input.MenuIDs), "Minutes", minutes)

	return &EstimatePreparationTimeResult{Minutes: minutes}, nil
}
