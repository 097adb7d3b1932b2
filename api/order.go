package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
)

// OrderSubmitter turns a list of menu item identifiers into a preparation
// estimate in minutes.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, ids []int) (int, error)
}

// CatalogSubmitter estimates in process, without a workflow backend.
type CatalogSubmitter struct {
	Catalog *Catalog
}

func (s CatalogSubmitter) SubmitOrder(ctx context.Context, ids []int) (int, error) {
	return s.Catalog.PreparationTime(ids)
}

// WorkflowStarter is the part of the Temporal client used to place orders.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// WorkflowSubmitter runs one Order workflow per submission and waits for its
// result.
type WorkflowSubmitter struct {
	Client    WorkflowStarter
	TaskQueue string
}

func (s WorkflowSubmitter) SubmitOrder(ctx context.Context, ids []int) (int, error) {
	taskQueue := s.TaskQueue
	if taskQueue == "" {
		taskQueue = DefaultTaskQueue
	}

	we, err := s.Client.ExecuteWorkflow(
		ctx,
		client.StartWorkflowOptions{
			ID:                    OrderWorkflowID(uuid.NewString()),
			TaskQueue:             taskQueue,
			WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
		},
		OrderWorkflowName,
		&OrderWorkflowInput{MenuIDs: ids},
	)
	if err != nil {
		return 0, fmt.Errorf("unable to start order workflow: %w", err)
	}

	var result OrderWorkflowResult
	if err := we.Get(ctx, &result); err != nil {
		return 0, fmt.Errorf("order workflow %s failed: %w", we.GetID(), err)
	}

	return result.PreparationTime, nil
}

func (h *handlers) handleOrderSubmit(w http.ResponseWriter, r *http.Request) {
	var ids []int
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, fmt.Sprintf("unable to decode order: %v", err), http.StatusBadRequest)
		return
	}

	// Empty or unknown orders are rejected before reaching the submitter.
	if _, err := h.catalog.PreparationTime(ids); err != nil {
		if errors.Is(err, ErrEmptyOrder) || errors.Is(err, ErrUnknownMenuItem) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	minutes, err := h.submitter.SubmitOrder(r.Context(), ids)
	if err != nil {
		h.logger.Error("order submission failed", "items", len(ids), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("order placed", "items", len(ids), "preparation_time", minutes)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PreparationTime{Minutes: minutes})
}
