// Package app assembles the returns-analytics server: configuration,
// structured logging, OpenTelemetry providers, the analytics service and
// the chi HTTP router, plus graceful startup and shutdown.
package app
