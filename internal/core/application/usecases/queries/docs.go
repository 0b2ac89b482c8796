// Package queries contains the read operations behind the dashboard views:
// the orders table, the order detail and the connection indicator.
//
// Handlers read loop-owned state and must run on the event loop goroutine.
package queries
