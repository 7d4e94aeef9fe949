package proto

import "encoding/json"

// Inbound is the envelope for intents coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeCreateRoom       = "createRoom"
	InboundTypeJoinRoom         = "joinRoom"
	InboundTypeToggleVisibility = "toggleVisibility"
	InboundTypeRoomMessage      = "roomMessage"
	InboundTypeReaction         = "reaction"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventJoinedRoom        = "joinedRoom"
	EventUserList          = "userList"
	EventVisibilityToggled = "visibilityToggled"
	EventNewMessage        = "newMessage"
	EventMention           = "mention"
	EventUpdateReactions   = "updateReactions"
)

// CreateRoomData requests to join a room, creating it if absent.
type CreateRoomData struct {
	RoomName string `json:"roomName"`
	IsPublic bool   `json:"isPublic"`
	UserName string `json:"userName"`
}

// JoinRoomData requests to join an existing room.
type JoinRoomData struct {
	RoomName string `json:"roomName"`
	UserName string `json:"userName"`
}

// ReactionData toggles an emoji reaction on a message. The roomMessage intent
// carries its text as a bare JSON string and needs no payload struct.
type ReactionData struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji"`
}

// Outbound is the envelope for notifications sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// User is a room member on the wire.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ConnectionID string `json:"connectionId"`
	Visible      bool   `json:"visible"`
}

// Message is a chat message on the wire. Timestamp is unix milliseconds.
type Message struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Author    string              `json:"author"`
	Timestamp int64               `json:"timestamp"`
	Mentions  []string            `json:"mentions"`
	Reactions map[string][]string `json:"reactions"`
}

// RoomSnapshot is the full room state sent to a joining client.
type RoomSnapshot struct {
	Name     string    `json:"name"`
	IsPublic bool      `json:"isPublic"`
	Users    []User    `json:"users"`
	Messages []Message `json:"messages"`
}

// JoinedRoomData acks a successful create/join.
type JoinedRoomData struct {
	Room RoomSnapshot `json:"room"`
	User User         `json:"user"`
}

// VisibilityToggledData acks a visibility flip.
type VisibilityToggledData struct {
	Visible bool `json:"visible"`
}

// MentionData is the targeted notification for a mentioned member.
type MentionData struct {
	Message Message `json:"message"`
	From    string  `json:"from"`
}

// UpdateReactionsData broadcasts a message's updated reaction tallies.
type UpdateReactionsData struct {
	MessageID string              `json:"messageId"`
	Reactions map[string][]string `json:"reactions"`
}

// Error describes a protocol- or domain-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
