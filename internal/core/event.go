package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventJoinedRoom acks a successful create/join with a full room snapshot.
	EventJoinedRoom EventKind = iota
	// EventUserList broadcasts the visible-members roster to a room.
	EventUserList
	// EventVisibilityToggled acks a visibility flip to the toggling client.
	EventVisibilityToggled
	// EventNewMessage broadcasts a posted message to a room.
	EventNewMessage
	// EventMention targets one visible mentioned member.
	EventMention
	// EventUpdateReactions broadcasts a message's updated reaction tallies.
	EventUpdateReactions
	// EventError notifies the offending client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system. Payloads
// are deep copies taken inside the dispatcher goroutine.
type Event struct {
	Kind      EventKind
	Room      string
	Snapshot  *RoomSnapshot       // EventJoinedRoom
	Self      User                // EventJoinedRoom: the caller's own member record
	Users     []User              // EventUserList
	Message   *Message            // EventNewMessage, EventMention
	From      string              // EventMention: author name
	Visible   bool                // EventVisibilityToggled
	MessageID string              // EventUpdateReactions
	Reactions map[string][]string // EventUpdateReactions
	Error     *CoreError          // EventError
}
