package feed

// ConnectionStatus is the dashboard's view of the realtime feed. It reflects
// what the connection manager believes, not the channel's internal state.
type ConnectionStatus string

const (
	Connected    ConnectionStatus = "Connected"
	Reconnecting ConnectionStatus = "Reconnecting"
	Disconnected ConnectionStatus = "Disconnected"
)

func (s ConnectionStatus) String() string {
	return string(s)
}
