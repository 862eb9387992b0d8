package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

type stubExpirer struct {
	asOf  time.Time
	calls int
	n     int
	err   error
}

func (s *stubExpirer) ExpireOverdue(_ context.Context, asOf time.Time) (int, error) {
	s.calls++
	s.asOf = asOf
	return s.n, s.err
}

func TestExpirySweepWorkflow(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	start := time.Date(2026, 5, 4, 3, 0, 0, 0, time.UTC)
	env.SetStartTime(start)

	stub := &stubExpirer{n: 7}
	env.RegisterActivity(&Activities{Budgets: stub})
	env.ExecuteWorkflow(ExpirySweepWorkflow)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var expired int
	require.NoError(t, env.GetWorkflowResult(&expired))
	assert.Equal(t, 7, expired)
	assert.Equal(t, 1, stub.calls)
	assert.True(t, stub.asOf.Equal(start), "cutoff must come from the workflow clock, got %s", stub.asOf)
}

func TestExpirySweepWorkflow_RetriesThenFails(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	stub := &stubExpirer{err: errors.New("database unavailable")}
	env.RegisterActivity(&Activities{Budgets: stub})
	env.ExecuteWorkflow(ExpirySweepWorkflow)

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	assert.Equal(t, 5, stub.calls)
}

func TestScheduleAction(t *testing.T) {
	a := ScheduleAction()
	assert.Equal(t, ExpirySweepScheduleID+"-run", a.ID)
	assert.NotNil(t, a.Workflow)
	assert.Empty(t, a.TaskQueue, "task queue is filled in by EnsureSchedule")
}
