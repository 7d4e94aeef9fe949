package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom joins a room, creating it first if absent.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom joins an existing room only.
	CommandJoinRoom
	// CommandSendMessage posts a message to the client's current room.
	CommandSendMessage
	// CommandToggleVisibility flips the client's roster visibility.
	CommandToggleVisibility
	// CommandToggleReaction toggles the client's emoji reaction on a message.
	CommandToggleReaction
)

// Command represents an action requested by a client. Only the fields
// relevant to Kind are set.
type Command struct {
	Kind      CommandKind
	Room      string
	IsPublic  bool
	UserName  string
	Text      string
	MessageID string
	Emoji     string
}
