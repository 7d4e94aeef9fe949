package core

import (
	"strings"
	"time"
)

// Message is an entry in a room's append-only log. Immutable after creation
// except for Reactions, which reaction toggles mutate in place. Mentions are
// resolved once at send time and never recomputed.
type Message struct {
	ID        string
	Text      string
	Author    string
	CreatedAt time.Time
	Mentions  []string
	Reactions map[string][]string
}

// NewMessage builds a message with mentions resolved against memberNames, the
// display names of the room's members at send time.
func NewMessage(id, text, author string, memberNames []string) *Message {
	return &Message{
		ID:        id,
		Text:      text,
		Author:    author,
		CreatedAt: time.Now(),
		Mentions:  extractMentions(text, memberNames),
		Reactions: make(map[string][]string),
	}
}

// extractMentions scans whitespace-separated tokens for @name candidates and
// keeps those that exactly match a known member name. Repeats collapse to a
// single entry; first-occurrence order is preserved.
func extractMentions(text string, memberNames []string) []string {
	known := make(map[string]struct{}, len(memberNames))
	for _, name := range memberNames {
		known[name] = struct{}{}
	}

	var mentions []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(text) {
		name, ok := strings.CutPrefix(token, "@")
		if !ok || name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		mentions = append(mentions, name)
	}
	return mentions
}

// ToggleReaction adds userID under emoji if absent and removes it if present.
func (m *Message) ToggleReaction(emoji, userID string) {
	list := m.Reactions[emoji]
	for i, id := range list {
		if id == userID {
			m.Reactions[emoji] = append(list[:i], list[i+1:]...)
			return
		}
	}
	m.Reactions[emoji] = append(list, userID)
}

// Clone returns a deep copy safe to hand to writer goroutines while the
// original keeps being mutated by reaction toggles.
func (m *Message) Clone() *Message {
	clone := *m
	clone.Mentions = append([]string(nil), m.Mentions...)
	clone.Reactions = m.CloneReactions()
	return &clone
}

// CloneReactions deep-copies the reaction tallies.
func (m *Message) CloneReactions() map[string][]string {
	reactions := make(map[string][]string, len(m.Reactions))
	for emoji, ids := range m.Reactions {
		reactions[emoji] = append([]string(nil), ids...)
	}
	return reactions
}
