// Package observability wires the client's OpenTelemetry spans to an OTLP
// collector. Without it the spans emitted per request are no-ops;
// applications that want them exported call InitTracer once at startup.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-app"))
//	if err != nil { ... }
//	defer tp.Shutdown(ctx)
package observability
