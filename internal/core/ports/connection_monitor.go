package ports

import "dashboard/internal/core/domain/model/feed"

// ConnectionMonitor exposes the state of the realtime feed connection.
type ConnectionMonitor interface {
	Status() feed.ConnectionStatus

	// Attempt is the number of consecutive reconnect attempts since the last
	// successful open.
	Attempt() int
}

// ConnectionController lets the dashboard force a drop of the feed, which
// exercises the reconnect path on demand.
type ConnectionController interface {
	ConnectionMonitor
	SimulateDrop()
}
