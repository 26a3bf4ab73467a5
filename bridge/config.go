package bridge

import (
	"time"

	"github.com/lixenwraith/filament/parameter"
)

// Config holds bridge listener configuration
type Config struct {
	// ListenAddr to bind; empty keeps the bridge disabled
	ListenAddr string

	// Connection limits
	MaxSessions int

	// Timing
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	PongTimeout      time.Duration

	// Buffer sizes
	MaxMessageSize int64
	SendBuffer     int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:       parameter.DefaultBridgeListenAddr,
		MaxSessions:      parameter.BridgeMaxSessions,
		HandshakeTimeout: parameter.BridgeHandshakeTimeout,
		WriteTimeout:     parameter.BridgeWriteTimeout,
		PingInterval:     parameter.BridgePingInterval,
		PongTimeout:      parameter.BridgePongTimeout,
		MaxMessageSize:   parameter.BridgeMaxMessageSize,
		SendBuffer:       parameter.BridgeSendBuffer,
	}
}
