// Package trace provides structured tracing for turbalance runs.
//
// # Usage
//
//	turbalance check --trace=- --trace-level=detail ./src
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: immediate write to output (file/stderr)
//   - Tail: keeps the last N events in memory; ring mode prints it on
//     exit, both mode prints it only when the run fails
//
// # Levels and scopes
//
//   - LevelPhase: ScopeDriver and ScopePass events (command, walk, cache)
//   - LevelDetail: adds ScopeFile events, one span per checked file
//   - LevelDebug: everything
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "check:"+path, parentID)
//	defer span.End("")
package trace
