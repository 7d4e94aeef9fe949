package core

import (
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// nextEvent returns the next queued event, failing on timeout. Unlike
// mustEvent it does not skip events, so it can assert relative order.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return nil
	}
}

// mustNoEvent drains everything currently queued and fails if any event of
// the given kind shows up. Call it only after the triggering command is known
// to be fully processed.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			return
		}
	}
}

// joinRoom registers a fresh client and joins it to a room via create-or-join,
// returning the client and its joinedRoom ack. Waiting on the ack keeps
// cross-client command ordering deterministic in tests.
func joinRoom(t *testing.T, hub *Hub, connID, room, name string, public bool) (*Client, *Event) {
	t.Helper()

	c := NewClient(connID)
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandCreateRoom, Room: room, IsPublic: public, UserName: name}
	ev := mustEvent(t, c.Events, EventJoinedRoom)
	return c, ev
}

func rosterNames(ev *Event) []string {
	names := make([]string, 0, len(ev.Users))
	for _, u := range ev.Users {
		names = append(names, u.Name)
	}
	return names
}
