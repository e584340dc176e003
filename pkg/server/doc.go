// Package server bridges browsers to tooltip controllers over WebSocket.
//
// Each connection gets its own Session: a mounted document, a popover
// manager whose changes are pushed to the client as Command frames, and a
// tooltip controller fed by the client's pointer events. Everything a
// session owns is touched only from its event loop goroutine; timer
// callbacks are marshalled onto that loop as well.
//
// Routes:
//
//	GET /ws       WebSocket endpoint (path configurable)
//	GET /healthz  liveness check
//	GET /metrics  Prometheus exposition, when enabled
package server
