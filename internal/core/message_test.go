package core

import (
	"reflect"
	"testing"
)

func TestExtractMentionsMatchesMembersExactly(t *testing.T) {
	members := []string{"alice", "bob"}

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"single mention", "hi @bob", []string{"bob"}},
		{"repeated mention collapses", "@bob @bob @bob", []string{"bob"}},
		{"non-member ignored", "hi @charlie", nil},
		{"partial name ignored", "hi @bo", nil},
		{"superset name ignored", "hi @bobby", nil},
		{"bare at ignored", "hi @ there", nil},
		{"multiple members in order", "@bob then @alice", []string{"bob", "alice"}},
		{"at inside word ignored", "mail me a@b", nil},
		{"no mentions", "hello world", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractMentions(tc.text, members)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("extractMentions(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestToggleReactionPairwise(t *testing.T) {
	msg := NewMessage("m1", "hello", "alice", nil)

	msg.ToggleReaction("👍", "u1")
	if got := msg.Reactions["👍"]; len(got) != 1 || got[0] != "u1" {
		t.Fatalf("after first toggle: %v", got)
	}

	msg.ToggleReaction("👍", "u1")
	if got := msg.Reactions["👍"]; len(got) != 0 {
		t.Fatalf("after second toggle: %v", got)
	}
}

func TestToggleReactionKeepsDistinctUsers(t *testing.T) {
	msg := NewMessage("m1", "hello", "alice", nil)

	msg.ToggleReaction("🎉", "u1")
	msg.ToggleReaction("🎉", "u2")
	msg.ToggleReaction("🎉", "u1")

	if got := msg.Reactions["🎉"]; len(got) != 1 || got[0] != "u2" {
		t.Fatalf("expected only u2 to remain, got %v", got)
	}
}

func TestCloneIsolatesReactions(t *testing.T) {
	msg := NewMessage("m1", "hello @bob", "alice", []string{"bob"})
	msg.ToggleReaction("👍", "u1")

	clone := msg.Clone()
	msg.ToggleReaction("👍", "u2")
	msg.ToggleReaction("🔥", "u1")

	if got := clone.Reactions["👍"]; len(got) != 1 {
		t.Fatalf("clone reactions mutated: %v", got)
	}
	if _, ok := clone.Reactions["🔥"]; ok {
		t.Fatal("clone picked up emoji added after cloning")
	}
}
