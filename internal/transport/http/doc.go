// Package http implements HTTP request handlers for the returns
// analytics API. It is a thin layer between transport and the
// analytics service: handlers parse and validate query parameters,
// delegate to the service, and translate service errors into RFC 7807
// problem responses.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → AnalyticsService → engines
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
package http
