// Package pubsub provides a generic publish/subscribe event system used to
// move notifications from background goroutines into the Bubble Tea loop.
package pubsub

import "time"

// EventType names the source of an event.
type EventType string

const (
	// LogEvent carries a formatted debug log line.
	LogEvent EventType = "log"
	// CellEvent reports a bridge cell write.
	CellEvent EventType = "cell"
	// AccountEvent reports an account switch inside a wallet client.
	AccountEvent EventType = "account"
	// RegistryEvent reports a registry directory change or watch failure.
	RegistryEvent EventType = "registry"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
