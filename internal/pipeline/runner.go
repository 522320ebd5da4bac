// File path: internal/pipeline/runner.go
package pipeline

import (
	"context"
	"errors"

	langgraphgo "github.com/tmc/langgraphgo"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/common/telemetry"
	"github.com/nicodishanthj/Prodigen_phase1/internal/llm"
)

var errUnexpectedState = errors.New("pipeline: unexpected state type")

// Runner owns the compiled graph and executes it once per request.
type Runner struct {
	graph *langgraphgo.Runnable
}

func NewRunner(client *llm.Client) (*Runner, error) {
	graph, err := buildGraph(NewSteps(client))
	if err != nil {
		return nil, err
	}
	return &Runner{graph: graph}, nil
}

// Run creates a fresh state, drives it through the graph, and returns it with
// the first recorded failure, if any. A step failure leaves the remaining
// steps unexecuted.
func (r *Runner) Run(ctx context.Context, input interface{}, operations []string) (*State, error) {
	logger := common.Logger()
	state := NewState(input, operations)
	logger.Info("pipeline: run starting", "operations", state.Operations)
	ctx, finish := telemetry.StartSpan(ctx, "pipeline.run")

	result, err := r.graph.Invoke(ctx, state)
	if out, ok := result.(*State); ok {
		state = out
	}
	duration := telemetry.SpanDuration(ctx)
	if err != nil {
		finish("outcome", "aborted")
		telemetry.RecordRun("aborted", duration)
		logger.Error("pipeline: run aborted", "error", err)
		return state, err
	}
	if state.Err != nil {
		finish("outcome", "failed")
		telemetry.RecordRun("failed", duration)
		logger.Error("pipeline: run failed", "error", state.Err)
		return state, state.Err
	}
	finish("outcome", "completed")
	telemetry.RecordRun("completed", duration)
	logger.Info("pipeline: run completed", "operations", state.Operations)
	return state, nil
}
