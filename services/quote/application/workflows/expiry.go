// Package workflows holds the Temporal workflows of the quote context.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// ExpirySweepScheduleID identifies the recurring expiry schedule.
const ExpirySweepScheduleID = "voltdesk-budget-expiry-sweep"

// BudgetExpirer moves overdue PENDING budgets to EXPIRED.
type BudgetExpirer interface {
	ExpireOverdue(ctx context.Context, asOf time.Time) (int, error)
}

// Activities are the side-effecting steps of the sweep.
type Activities struct {
	Budgets BudgetExpirer
}

// ExpireOverdue expires every budget whose validity ended before asOf.
func (a *Activities) ExpireOverdue(ctx context.Context, asOf time.Time) (int, error) {
	n, err := a.Budgets.ExpireOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}
	activity.GetLogger(ctx).Info("expired overdue budgets", "count", n, "as_of", asOf)
	return n, nil
}

// ExpirySweepWorkflow runs one sweep using the workflow's deterministic clock
// as the cutoff and returns how many budgets expired.
func ExpirySweepWorkflow(ctx workflow.Context) (int, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	var expired int
	if err := workflow.ExecuteActivity(ctx, a.ExpireOverdue, workflow.Now(ctx)).Get(ctx, &expired); err != nil {
		return 0, err
	}
	return expired, nil
}

// Register adds the sweep workflow and its activities to w.
func Register(w worker.Registry, budgets BudgetExpirer) {
	w.RegisterWorkflow(ExpirySweepWorkflow)
	w.RegisterActivity(&Activities{Budgets: budgets})
}

// ScheduleAction is the schedule action that starts one sweep.
func ScheduleAction() *client.ScheduleWorkflowAction {
	return &client.ScheduleWorkflowAction{
		ID:       ExpirySweepScheduleID + "-run",
		Workflow: ExpirySweepWorkflow,
	}
}
