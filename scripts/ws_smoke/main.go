package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomcast/roomcast-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "display name to join with")
	room := flag.String("room", "lobby", "room name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeCreateRoom, proto.CreateRoomData{
		RoomName: *room,
		IsPublic: true,
		UserName: *user,
	}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeRoomMessage, *text); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		fmt.Println()

		if outbound.Error != nil {
			return fmt.Errorf("server error: %s (%s)", outbound.Error.Msg, outbound.Error.Code)
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventJoinedRoom:
			var evt proto.JoinedRoomData
			if err := json.Unmarshal(raw, &evt); err != nil {
				return fmt.Errorf("unmarshal joinedRoom: %w", err)
			}
			fmt.Printf("Joined: room=%s public=%v members=%d history=%d\n",
				evt.Room.Name, evt.Room.IsPublic, len(evt.Room.Users), len(evt.Room.Messages))
		case proto.EventUserList:
			var users []proto.User
			if err := json.Unmarshal(raw, &users); err == nil {
				fmt.Printf("Roster: %d visible member(s)\n", len(users))
			}
		case proto.EventNewMessage:
			var evt proto.Message
			if err := json.Unmarshal(raw, &evt); err != nil {
				fmt.Printf("Raw data: %s\n", string(raw))
				return fmt.Errorf("unmarshal newMessage: %w", err)
			}
			fmt.Printf("Message: id=%s author=%s text=%q mentions=%v\n", evt.ID, evt.Author, evt.Text, evt.Mentions)
			return nil
		default:
			// keep looping for the message broadcast
		}
	}
}
