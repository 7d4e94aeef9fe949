package core

// Client is one connected peer as seen by the hub. The transport pumps
// Commands in and Events out; the hub owns which room and identity the
// connection is associated with.
type Client struct {
	ConnID   string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(connID string) *Client {
	return &Client{
		ConnID:   connID,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}
