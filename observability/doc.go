// Package observability provides OpenTelemetry tracing and metrics for
// the supplysched orchestration code.
//
// The computation engines themselves are pure and silent; spans and
// metric recordings are attached where the engines are invoked — the
// cascade propagation loop in particular. Initialization (InitTracer,
// InitMeter) is the embedding application's responsibility; without it
// the helpers are no-ops against the default otel providers.
package observability
