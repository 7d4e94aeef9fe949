package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomcast/roomcast-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "display name")
	room := flag.String("room", "lobby", "room to join or create")
	private := flag.Bool("private", false, "create the room as non-public")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	joinPayload, err := json.Marshal(proto.CreateRoomData{
		RoomName: *room,
		IsPublic: !*private,
		UserName: *user,
	})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeCreateRoom, Data: joinPayload}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type messages and press Enter to send.")
	fmt.Println("Commands: /react <messageId> <emoji>, /hide (toggle visibility). Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("! error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			log.Printf("marshal outbound data: %v", err)
			continue
		}

		switch outbound.Event {
		case proto.EventJoinedRoom:
			var evt proto.JoinedRoomData
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal joinedRoom: %v", err)
				continue
			}
			fmt.Printf("* joined %s (%d members, %d messages)\n",
				evt.Room.Name, len(evt.Room.Users), len(evt.Room.Messages))
		case proto.EventUserList:
			var users []proto.User
			if err := json.Unmarshal(raw, &users); err != nil {
				log.Printf("unmarshal userList: %v", err)
				continue
			}
			names := make([]string, 0, len(users))
			for _, u := range users {
				names = append(names, u.Name)
			}
			fmt.Printf("* online: %s\n", strings.Join(names, ", "))
		case proto.EventNewMessage:
			var evt proto.Message
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal newMessage: %v", err)
				continue
			}
			fmt.Printf("[%s] %s: %s\n", evt.ID, evt.Author, evt.Text)
		case proto.EventMention:
			var evt proto.MentionData
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal mention: %v", err)
				continue
			}
			fmt.Printf("@ %s mentioned you: %s\n", evt.From, evt.Message.Text)
		case proto.EventUpdateReactions:
			var evt proto.UpdateReactionsData
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal updateReactions: %v", err)
				continue
			}
			fmt.Printf("* reactions on %s: %v\n", evt.MessageID, evt.Reactions)
		case proto.EventVisibilityToggled:
			var evt proto.VisibilityToggledData
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal visibilityToggled: %v", err)
				continue
			}
			fmt.Printf("* you are now %s\n", visibilityWord(evt.Visible))
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}

func visibilityWord(visible bool) string {
	if visible {
		return "visible"
	}
	return "invisible"
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			inbound, err := lineToInbound(text)
			if err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			if err := wsjson.Write(ctx, conn, inbound); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func lineToInbound(text string) (proto.Inbound, error) {
	if reactArgs, ok := strings.CutPrefix(text, "/react "); ok {
		parts := strings.Fields(reactArgs)
		if len(parts) != 2 {
			return proto.Inbound{}, errors.New("usage: /react <messageId> <emoji>")
		}
		payload, err := json.Marshal(proto.ReactionData{MessageID: parts[0], Emoji: parts[1]})
		if err != nil {
			return proto.Inbound{}, err
		}
		return proto.Inbound{Type: proto.InboundTypeReaction, Data: payload}, nil
	}
	if text == "/hide" {
		return proto.Inbound{Type: proto.InboundTypeToggleVisibility}, nil
	}

	payload, err := json.Marshal(text)
	if err != nil {
		return proto.Inbound{}, err
	}
	return proto.Inbound{Type: proto.InboundTypeRoomMessage, Data: payload}, nil
}
