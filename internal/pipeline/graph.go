// File path: internal/pipeline/graph.go
package pipeline

import (
	"context"

	langgraphgo "github.com/tmc/langgraphgo"
)

const nodeParse = "parse"

// nextStep returns the first requested step at or after position in the fixed
// order, or END when nothing is left or a failure has been recorded.
func nextStep(state *State, position int) string {
	if state.Err != nil {
		return langgraphgo.END
	}
	for _, name := range stepOrder[position:] {
		if state.wants(name) {
			return name
		}
	}
	return langgraphgo.END
}

func routeAfter(position int) langgraphgo.RouteFunc {
	return func(ctx context.Context, raw interface{}) string {
		state, ok := raw.(*State)
		if !ok {
			return langgraphgo.END
		}
		return nextStep(state, position)
	}
}

func asNode(fn func(ctx context.Context, state *State) *State) langgraphgo.NodeFunc {
	return func(ctx context.Context, raw interface{}) (interface{}, error) {
		state, ok := raw.(*State)
		if !ok {
			return raw, errUnexpectedState
		}
		return fn(ctx, state), nil
	}
}

// buildGraph wires the fixed parse → description? → comparison? → faq? graph.
// Conditional routing skips steps that were not requested and short-circuits
// to END once a step records a failure.
func buildGraph(steps *Steps) (*langgraphgo.Runnable, error) {
	graph := langgraphgo.NewStateGraph()
	graph.AddNode(nodeParse, asNode(steps.Parse))
	graph.AddNode(OpDescription, asNode(steps.Description))
	graph.AddNode(OpComparison, asNode(steps.Comparison))
	graph.AddNode(OpFAQ, asNode(steps.FAQ))

	graph.AddConditionalEdge(nodeParse, routeAfter(0))
	graph.AddConditionalEdge(OpDescription, routeAfter(1))
	graph.AddConditionalEdge(OpComparison, routeAfter(2))
	graph.AddConditionalEdge(OpFAQ, routeAfter(3))

	graph.SetEntryPoint(nodeParse)
	return graph.Compile()
}
