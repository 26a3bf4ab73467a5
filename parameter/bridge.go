package parameter

import "time"

// Remote Bridge
const (
	// DefaultBridgeListenAddr is empty: the bridge stays disabled unless
	// an address is configured
	DefaultBridgeListenAddr = ""

	// BridgeHandshakeTimeout bounds the websocket upgrade
	BridgeHandshakeTimeout = 10 * time.Second

	// BridgeWriteTimeout bounds a single websocket write
	BridgeWriteTimeout = 5 * time.Second

	// BridgePingInterval keeps idle sessions alive
	BridgePingInterval = 30 * time.Second

	// BridgePongTimeout closes sessions that stop answering pings
	BridgePongTimeout = 60 * time.Second

	// BridgeMaxMessageSize caps inbound frames; commands are small JSON
	BridgeMaxMessageSize = 4096

	// BridgeSendBuffer is the per-session outbound queue; slow consumers
	// are disconnected rather than allowed to stall the broadcaster
	BridgeSendBuffer = 64

	// BridgeMaxSessions caps concurrent websocket sessions
	BridgeMaxSessions = 32
)
