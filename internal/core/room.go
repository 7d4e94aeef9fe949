package core

import "github.com/roomcast/roomcast-server/internal/utils"

// Room is a named message channel with an ordered member list and an
// append-only message log. Rooms are created on first reference and live for
// the process lifetime; visibility is fixed at creation.
type Room struct {
	Name     string
	IsPublic bool
	Users    []*User
	Messages []*Message
}

// NewRoom constructs an empty room.
func NewRoom(name string, isPublic bool) *Room {
	return &Room{Name: name, IsPublic: isPublic}
}

// AddUser appends a member. Join order is the fan-out order for broadcasts.
func (r *Room) AddUser(u *User) {
	r.Users = append(r.Users, u)
}

// RemoveUserByConn deletes the member bound to connID. Returns true if a
// member was removed.
func (r *Room) RemoveUserByConn(connID string) bool {
	for i, u := range r.Users {
		if u.ConnID == connID {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			return true
		}
	}
	return false
}

// UserByConn returns the member bound to connID, or nil.
func (r *Room) UserByConn(connID string) *User {
	for _, u := range r.Users {
		if u.ConnID == connID {
			return u
		}
	}
	return nil
}

// VisibleUserByName returns the first visible member with the given display
// name, or nil. Display names are not unique; collisions resolve to the
// earliest joiner.
func (r *Room) VisibleUserByName(name string) *User {
	for _, u := range r.Users {
		if u.Name == name && u.Visible {
			return u
		}
	}
	return nil
}

// VisibleUsers returns copies of the members with Visible set, in join order.
// This is the roster broadcast to clients.
func (r *Room) VisibleUsers() []User {
	users := make([]User, 0, len(r.Users))
	for _, u := range r.Users {
		if u.Visible {
			users = append(users, *u)
		}
	}
	return users
}

// AddMessage appends a new message authored by author, resolving mentions
// against the current membership.
func (r *Room) AddMessage(text, author string) *Message {
	names := make([]string, 0, len(r.Users))
	for _, u := range r.Users {
		names = append(names, u.Name)
	}
	msg := NewMessage(utils.NewID(), text, author, names)
	r.Messages = append(r.Messages, msg)
	return msg
}

// MessageByID returns the message with the given id, or nil.
func (r *Room) MessageByID(id string) *Message {
	for _, m := range r.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// RoomSnapshot is a point-in-time deep copy of room state, handed to a
// joining client so later mutations are not observed by its writer goroutine.
type RoomSnapshot struct {
	Name     string
	IsPublic bool
	Users    []User
	Messages []*Message
}

// Snapshot copies the room's full state, including reaction tallies.
func (r *Room) Snapshot() *RoomSnapshot {
	users := make([]User, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, *u)
	}
	messages := make([]*Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		messages = append(messages, m.Clone())
	}
	return &RoomSnapshot{
		Name:     r.Name,
		IsPublic: r.IsPublic,
		Users:    users,
		Messages: messages,
	}
}
