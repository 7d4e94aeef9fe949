package http

import (
	"encoding/json"

	"github.com/roomcast/roomcast-server/internal/core"
	"github.com/roomcast/roomcast-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. Structural
// problems (unknown type, missing required fields) come back as a proto error
// for the caller; malformed JSON is returned as an error and ends the
// connection.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.RoomName == "" || create.UserName == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomName and userName are required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandCreateRoom,
			Room:     create.RoomName,
			IsPublic: create.IsPublic,
			UserName: create.UserName,
		}, nil, nil
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomName == "" || join.UserName == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomName and userName are required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     join.RoomName,
			UserName: join.UserName,
		}, nil, nil
	case proto.InboundTypeToggleVisibility:
		return &core.Command{Kind: core.CommandToggleVisibility}, nil, nil
	case proto.InboundTypeRoomMessage:
		var text string
		if err := json.Unmarshal(inbound.Data, &text); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Text: text,
		}, nil, nil
	case proto.InboundTypeReaction:
		var reaction proto.ReactionData
		if err := json.Unmarshal(inbound.Data, &reaction); err != nil {
			return nil, nil, err
		}
		if reaction.MessageID == "" || reaction.Emoji == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "messageId and emoji are required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandToggleReaction,
			MessageID: reaction.MessageID,
			Emoji:     reaction.Emoji,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

// outboundFromEvent maps a core event to its wire envelope.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoinedRoom:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventJoinedRoom,
			Data: proto.JoinedRoomData{
				Room: snapshotToProto(event.Snapshot),
				User: userToProto(event.Self),
			},
		}
	case core.EventUserList:
		users := make([]proto.User, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, userToProto(u))
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserList,
			Data:  users,
		}
	case core.EventVisibilityToggled:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventVisibilityToggled,
			Data:  proto.VisibilityToggledData{Visible: event.Visible},
		}
	case core.EventNewMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventNewMessage,
			Data:  messageToProto(event.Message),
		}
	case core.EventMention:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMention,
			Data: proto.MentionData{
				Message: messageToProto(event.Message),
				From:    event.From,
			},
		}
	case core.EventUpdateReactions:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUpdateReactions,
			Data: proto.UpdateReactionsData{
				MessageID: event.MessageID,
				Reactions: event.Reactions,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event kind"}}
	}
}

func userToProto(u core.User) proto.User {
	return proto.User{
		ID:           u.ID,
		Name:         u.Name,
		ConnectionID: u.ConnID,
		Visible:      u.Visible,
	}
}

func messageToProto(m *core.Message) proto.Message {
	mentions := m.Mentions
	if mentions == nil {
		mentions = []string{}
	}
	return proto.Message{
		ID:        m.ID,
		Text:      m.Text,
		Author:    m.Author,
		Timestamp: m.CreatedAt.UnixMilli(),
		Mentions:  mentions,
		Reactions: m.Reactions,
	}
}

func snapshotToProto(s *core.RoomSnapshot) proto.RoomSnapshot {
	users := make([]proto.User, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, userToProto(u))
	}
	messages := make([]proto.Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, messageToProto(m))
	}
	return proto.RoomSnapshot{
		Name:     s.Name,
		IsPublic: s.IsPublic,
		Users:    users,
		Messages: messages,
	}
}
