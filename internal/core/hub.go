package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roomcast/roomcast-server/internal/utils"
)

// session is the hub-owned association between a connection and the room and
// identity it joined with. room stays empty until a join succeeds. cancel
// stops the connection's command pump on disconnect.
type session struct {
	client *Client
	cancel context.CancelFunc
	room   string
	user   *User
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub is the dispatcher. A single Run goroutine owns the registry and all
// sessions; every command is handled to completion before the next one, so
// room state needs no locking and per-room broadcast order is the order
// commands were applied.
type Hub struct {
	registry   *Registry
	log        zerolog.Logger
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	sessions   map[string]*session
}

// NewHub creates a hub over the given registry. A nil registry or logger is
// replaced with an empty one, which keeps tests self-contained.
func NewHub(registry *Registry, logger *zerolog.Logger) *Hub {
	if registry == nil {
		registry = NewRegistry()
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		registry:   registry,
		log:        l,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		sessions:   make(map[string]*session),
	}
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient reports a transport-level disconnect.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations, disconnects, and commands one at a time until
// ctx is done. All room, member, and message state is touched only here.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			pumpCtx, cancel := context.WithCancel(ctx)
			h.sessions[c.ConnID] = &session{client: c, cancel: cancel}
			go h.pump(pumpCtx, c)
			h.log.Debug().Str("conn_id", c.ConnID).Msg("client registered")
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		}
	}
}

// pump forwards a client's commands into the single dispatcher stream,
// preserving per-client order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	sess, ok := h.sessions[c.ConnID]
	if !ok {
		return
	}
	switch cmd.Kind {
	case CommandCreateRoom:
		h.handleCreate(sess, cmd)
	case CommandJoinRoom:
		h.handleJoin(sess, cmd)
	case CommandSendMessage:
		h.handleMessage(sess, cmd)
	case CommandToggleVisibility:
		h.handleToggleVisibility(sess)
	case CommandToggleReaction:
		h.handleToggleReaction(sess, cmd)
	}
}

// handleCreate joins the named room, creating it if absent. A connection is a
// member of at most one room, so a second join intent is dropped.
func (h *Hub) handleCreate(sess *session, cmd *Command) {
	if cmd.Room == "" || cmd.UserName == "" || sess.room != "" {
		return
	}
	room := h.registry.GetOrCreate(cmd.Room, cmd.IsPublic)
	h.admit(sess, room, cmd.UserName)
}

// handleJoin joins an existing room. Unknown names and private rooms surface
// as error events to the caller only.
func (h *Hub) handleJoin(sess *session, cmd *Command) {
	if cmd.Room == "" || cmd.UserName == "" || sess.room != "" {
		return
	}
	room := h.registry.Get(cmd.Room)
	if room == nil {
		h.send(sess.client, &Event{
			Kind:  EventError,
			Error: coreError(ErrCodeRoomNotFound, ErrRoomNotFound.Error()),
		})
		return
	}
	if !room.IsPublic && room.UserByConn(sess.client.ConnID) == nil {
		h.send(sess.client, &Event{
			Kind:  EventError,
			Error: coreError(ErrCodeRoomPrivate, ErrRoomPrivate.Error()),
		})
		return
	}
	h.admit(sess, room, cmd.UserName)
}

// admit allocates a fresh member, acks the joiner with a full room snapshot,
// and broadcasts the updated roster to everyone including the joiner.
func (h *Hub) admit(sess *session, room *Room, name string) {
	user := NewUser(utils.NewID(), name, sess.client.ConnID)
	room.AddUser(user)
	sess.room = room.Name
	sess.user = user

	h.send(sess.client, &Event{
		Kind:     EventJoinedRoom,
		Room:     room.Name,
		Snapshot: room.Snapshot(),
		Self:     *user,
	})
	h.broadcastUserList(room)

	h.log.Info().
		Str("room", room.Name).
		Str("user", name).
		Str("conn_id", sess.client.ConnID).
		Msg("user joined room")
}

// handleMessage appends the message to the room log, broadcasts it, then
// delivers targeted mention notifications to visible mentioned members.
func (h *Hub) handleMessage(sess *session, cmd *Command) {
	room, user := h.current(sess)
	if room == nil {
		return
	}
	if strings.TrimSpace(cmd.Text) == "" {
		return
	}

	msg := room.AddMessage(cmd.Text, user.Name)
	h.broadcast(room, &Event{
		Kind:    EventNewMessage,
		Room:    room.Name,
		Message: msg.Clone(),
	})

	for _, name := range msg.Mentions {
		target := room.VisibleUserByName(name)
		if target == nil {
			continue
		}
		ts, ok := h.sessions[target.ConnID]
		if !ok {
			continue
		}
		h.send(ts.client, &Event{
			Kind:    EventMention,
			Room:    room.Name,
			Message: msg.Clone(),
			From:    user.Name,
		})
	}
}

// handleToggleVisibility flips the member's visible flag, acks the new state
// privately, and broadcasts the updated roster.
func (h *Hub) handleToggleVisibility(sess *session) {
	room, user := h.current(sess)
	if room == nil {
		return
	}
	user.Visible = !user.Visible

	h.send(sess.client, &Event{
		Kind:    EventVisibilityToggled,
		Room:    room.Name,
		Visible: user.Visible,
	})
	h.broadcastUserList(room)
}

// handleToggleReaction toggles the member's id under the emoji and broadcasts
// the message's full updated tallies. Unknown messages are a no-op.
func (h *Hub) handleToggleReaction(sess *session, cmd *Command) {
	room, user := h.current(sess)
	if room == nil || cmd.Emoji == "" {
		return
	}
	msg := room.MessageByID(cmd.MessageID)
	if msg == nil {
		return
	}
	msg.ToggleReaction(cmd.Emoji, user.ID)

	h.broadcast(room, &Event{
		Kind:      EventUpdateReactions,
		Room:      room.Name,
		MessageID: msg.ID,
		Reactions: msg.CloneReactions(),
	})
}

// handleDisconnect removes the member permanently and tells the rest of the
// room. Authored messages, mentions, and reactions stay recorded.
func (h *Hub) handleDisconnect(c *Client) {
	sess, ok := h.sessions[c.ConnID]
	if !ok {
		return
	}
	sess.cancel()
	delete(h.sessions, c.ConnID)
	if sess.room == "" {
		return
	}
	room := h.registry.Get(sess.room)
	if room == nil {
		return
	}
	if room.RemoveUserByConn(c.ConnID) {
		h.broadcastUserList(room)
		h.log.Info().
			Str("room", room.Name).
			Str("conn_id", c.ConnID).
			Msg("user left room")
	}
}

// current resolves the session's room and member, or (nil, nil) for
// connections that have not joined.
func (h *Hub) current(sess *session) (*Room, *User) {
	if sess.room == "" || sess.user == nil {
		return nil, nil
	}
	room := h.registry.Get(sess.room)
	if room == nil {
		return nil, nil
	}
	return room, sess.user
}

func (h *Hub) broadcastUserList(room *Room) {
	h.broadcast(room, &Event{
		Kind:  EventUserList,
		Room:  room.Name,
		Users: room.VisibleUsers(),
	})
}

// broadcast fans an event out to every connection in the room, in join order.
func (h *Hub) broadcast(room *Room, event *Event) {
	for _, u := range room.Users {
		if sess, ok := h.sessions[u.ConnID]; ok {
			h.send(sess.client, event)
		}
	}
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		h.log.Warn().Str("conn_id", c.ConnID).Msg("dropping event for slow consumer")
	}
}
