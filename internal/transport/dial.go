package transport

import (
	"errors"
	"log/slog"
)

// DialOptions configures the concrete client connection.
type DialOptions struct {
	// SessionDir holds the client's credential/session material.
	SessionDir string
	Log        *slog.Logger
}

// Dialer connects a concrete messaging client.
type Dialer func(DialOptions) (Client, error)

var dialer Dialer

// RegisterDialer installs the concrete client implementation. The protocol
// client is built and maintained outside this module; its Go binding calls
// RegisterDialer from an init function, the same way database/sql drivers
// register themselves.
func RegisterDialer(d Dialer) {
	dialer = d
}

// Dial connects the registered client.
func Dial(opts DialOptions) (Client, error) {
	if dialer == nil {
		return nil, errors.New("transport: no messaging client registered")
	}
	return dialer(opts)
}
