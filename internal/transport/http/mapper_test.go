package http

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/roomcast/roomcast-server/internal/core"
	"github.com/roomcast/roomcast-server/internal/proto"
)

func mustInbound(t *testing.T, typ string, data any) proto.Inbound {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal inbound data: %v", err)
	}
	return proto.Inbound{Type: typ, Data: raw}
}

func TestInboundToCommandCreateRoom(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(mustInbound(t, proto.InboundTypeCreateRoom, proto.CreateRoomData{
		RoomName: "lobby",
		IsPublic: true,
		UserName: "alice",
	}))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandCreateRoom || cmd.Room != "lobby" || !cmd.IsPublic || cmd.UserName != "alice" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandRequiresFields(t *testing.T) {
	cases := []struct {
		name    string
		inbound proto.Inbound
	}{
		{"create without names", mustInbound(t, proto.InboundTypeCreateRoom, proto.CreateRoomData{})},
		{"join without user", mustInbound(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomName: "lobby"})},
		{"reaction without emoji", mustInbound(t, proto.InboundTypeReaction, proto.ReactionData{MessageID: "m1"})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, protoErr, err := inboundToCommand(tc.inbound)
			if err != nil {
				t.Fatalf("unexpected hard error: %v", err)
			}
			if cmd != nil || protoErr == nil || protoErr.Code != core.ErrCodeBadRequest {
				t.Fatalf("expected bad_request, got cmd=%+v err=%+v", cmd, protoErr)
			}
		})
	}
}

func TestInboundToCommandRoomMessageRawString(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(mustInbound(t, proto.InboundTypeRoomMessage, "hi @bob"))
	if err != nil || protoErr != nil {
		t.Fatalf("unexpected errors: %v %v", err, protoErr)
	}
	if cmd.Kind != core.CommandSendMessage || cmd.Text != "hi @bob" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestInboundToCommandUnknownType(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(proto.Inbound{Type: "dance"})
	if err != nil {
		t.Fatalf("unexpected hard error: %v", err)
	}
	if cmd != nil || protoErr == nil || protoErr.Code != "invalid_message" {
		t.Fatalf("expected invalid_message, got cmd=%+v err=%+v", cmd, protoErr)
	}
}

func TestOutboundFromEventNewMessage(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := outboundFromEvent(&core.Event{
		Kind: core.EventNewMessage,
		Room: "lobby",
		Message: &core.Message{
			ID:        "m1",
			Text:      "hi @bob",
			Author:    "alice",
			CreatedAt: created,
			Mentions:  []string{"bob"},
			Reactions: map[string][]string{},
		},
	})

	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventNewMessage {
		t.Fatalf("unexpected envelope: %+v", out)
	}
	msg, ok := out.Data.(proto.Message)
	if !ok {
		t.Fatalf("unexpected data type: %T", out.Data)
	}
	if msg.Timestamp != created.UnixMilli() {
		t.Fatalf("timestamp must be unix milliseconds, got %d", msg.Timestamp)
	}
	if msg.Author != "alice" || len(msg.Mentions) != 1 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestOutboundFromEventErrorEnvelope(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind:  core.EventError,
		Error: &core.CoreError{Code: core.ErrCodeRoomPrivate, Message: "room is private"},
	})
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeRoomPrivate {
		t.Fatalf("unexpected envelope: %+v", out)
	}
}

func TestOutboundUserListWireShape(t *testing.T) {
	out := outboundFromEvent(&core.Event{
		Kind: core.EventUserList,
		Room: "lobby",
		Users: []core.User{
			{ID: "u1", Name: "alice", ConnID: "c1", Visible: true},
		},
	})

	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal outbound: %v", err)
	}
	for _, field := range []string{`"connectionId":"c1"`, `"visible":true`, `"event":"userList"`} {
		if !strings.Contains(string(raw), field) {
			t.Fatalf("wire payload missing %s: %s", field, raw)
		}
	}
}
