// Package middleware provides server.Middleware for tooltip sessions.
//
// # Prometheus Metrics
//
// Prometheus counts client events and times how long each takes to apply:
//
//	reg := prometheus.NewRegistry()
//	srv := server.New(server.Config{
//	    Registry:   reg,
//	    Metrics:    true,
//	    Middleware: []server.Middleware{middleware.Prometheus(middleware.WithRegistry(reg))},
//	}, mount)
//
// # OpenTelemetry
//
// OpenTelemetry starts one span per client event, named after the event
// type ("tooltip.MouseEnter"), carrying the session ID and target HID.
// The tracer comes from the global provider unless WithTracer is given;
// install a provider in main before starting the server.
//
// Middleware run in order, so put OpenTelemetry first to have the span
// cover the time Prometheus records.
package middleware
