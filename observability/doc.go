// Package observability provides OpenTelemetry tracing for the
// authentication flow.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("authkit"), log)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "auth.login")
//	defer span.End()
//
// The auth orchestrator emits auth.authenticate and auth.authorize spans
// through the global provider this package installs.
package observability
