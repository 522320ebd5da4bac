// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	llmCallTotal     *expvar.Map
	llmCallFailures  *expvar.Map
	llmCallLatencyMS *expvar.Map

	runTotal      *expvar.Map
	runDurationMS *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		llmCallTotal = expvar.NewMap("prodigen_llm_calls_total")
		llmCallFailures = expvar.NewMap("prodigen_llm_call_failures_total")
		llmCallLatencyMS = expvar.NewMap("prodigen_llm_call_latency_ms")

		runTotal = expvar.NewMap("prodigen_runs_total")
		runDurationMS = expvar.NewInt("prodigen_run_duration_ms")
	})
}

// StartSpan marks the beginning of a traced operation. The returned func logs
// the duration with any extra attributes when called.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		if sp == nil {
			return
		}
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordLLMCall counts a model invocation per operation and accumulates its
// latency.
func RecordLLMCall(operation string, duration time.Duration, err error) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(operation))
	if key == "" {
		key = "unknown"
	}
	llmCallTotal.Add(key, 1)
	if err != nil {
		llmCallFailures.Add(key, 1)
	}
	if duration > 0 {
		llmCallLatencyMS.Add(key, duration.Milliseconds())
	}
}

// RecordRun counts a finished pipeline run by outcome status.
func RecordRun(status string, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(status))
	if key == "" {
		key = "unknown"
	}
	runTotal.Add(key, 1)
	if duration > 0 {
		runDurationMS.Add(duration.Milliseconds())
	}
}

// SpanDuration reports the elapsed time of the span carried by ctx, if any.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
