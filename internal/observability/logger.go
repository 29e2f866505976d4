// Package observability provides structured logging and metrics collection
// for the solver pipeline. Logger wraps log/slog with persistent context
// fields the way the teacher's logger wraps agent context; Metrics
// collects tier hits, promotion events, and mutation outcomes in place of
// the teacher's reflection/pattern-centric counters.
package observability

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger wraps slog with persistent agent context.
type Logger struct {
	mu     sync.RWMutex
	inner  *slog.Logger
	agent  string
	fields []slog.Attr
}

// NewLogger creates a structured logger for a given agent.
// Output defaults to os.Stderr if w is nil.
func NewLogger(agentName string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &Logger{
		inner: slog.New(handler),
		agent: agentName,
	}
}

// NewLoggerWithHandler creates a logger with a custom slog handler.
func NewLoggerWithHandler(agentName string, h slog.Handler) *Logger {
	return &Logger{
		inner: slog.New(h),
		agent: agentName,
	}
}

// With returns a new Logger with additional persistent fields.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{
		inner:  l.inner.With(slog.Any(key, value)),
		agent:  l.agent,
		fields: append(l.fields, slog.Any(key, value)),
	}
}

// attrs prepends agent name to the arguments.
func (l *Logger) attrs(msg string, args []any) (string, []any) {
	return msg, append([]any{slog.String("agent", l.agent)}, args...)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	msg, args = l.attrs(msg, args)
	l.inner.Debug(msg, args...)
}

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	msg, args = l.attrs(msg, args)
	l.inner.Info(msg, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	msg, args = l.attrs(msg, args)
	l.inner.Warn(msg, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	msg, args = l.attrs(msg, args)
	l.inner.Error(msg, args...)
}

// Stage logs a solver-orchestrator stage event (e.g. "s0 miss", "s2 retry 2/3").
func (l *Logger) Stage(taskID, stage string, args ...any) {
	allArgs := append([]any{
		slog.String("agent", l.agent),
		slog.String("task_id", taskID),
		slog.String("stage", stage),
	}, args...)
	l.inner.Info("stage", allArgs...)
}

// TierEvent logs a tier-resolution outcome: which tier (s0/s1/s2) produced
// or attempted a candidate, and whether it scored a pass.
func (l *Logger) TierEvent(taskID, tier string, score float64, args ...any) {
	allArgs := append([]any{
		slog.String("agent", l.agent),
		slog.String("task_id", taskID),
		slog.String("tier", tier),
		slog.Float64("score", score),
	}, args...)
	l.inner.Info("tier", allArgs...)
}

// PromotionEvent logs a promotion-state-machine transition.
func (l *Logger) PromotionEvent(signature, from, to string, args ...any) {
	allArgs := append([]any{
		slog.String("agent", l.agent),
		slog.String("signature", signature),
		slog.String("from", from),
		slog.String("to", to),
	}, args...)
	l.inner.Info("promotion", allArgs...)
}

// MutationEvent logs a chaos-monkey mutation outcome.
func (l *Logger) MutationEvent(taskID, kind string, verifiedBroken bool, args ...any) {
	allArgs := append([]any{
		slog.String("agent", l.agent),
		slog.String("task_id", taskID),
		slog.String("mutation_kind", kind),
		slog.Bool("verified_broken", verifiedBroken),
	}, args...)
	l.inner.Info("mutation", allArgs...)
}

// AgentName returns the agent name associated with this logger.
func (l *Logger) AgentName() string {
	return l.agent
}
