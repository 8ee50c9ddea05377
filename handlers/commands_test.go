package handlers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestResolvedTargetMessage(t *testing.T) {
	// Interactions can arrive without resolved data; that must read as "no
	// target", not a panic.
	if got := resolvedTargetMessage(discordgo.ApplicationCommandInteractionData{TargetID: "1"}); got != nil {
		t.Fatalf("nil resolved data: got %+v, want nil", got)
	}

	if got := resolvedTargetMessage(discordgo.ApplicationCommandInteractionData{
		TargetID: "1",
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Messages: map[string]*discordgo.Message{},
		},
	}); got != nil {
		t.Fatalf("target missing from resolved map: got %+v, want nil", got)
	}

	want := &discordgo.Message{ID: "1", Content: "https://x.com/a/status/2"}
	got := resolvedTargetMessage(discordgo.ApplicationCommandInteractionData{
		TargetID: "1",
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Messages: map[string]*discordgo.Message{"1": want},
		},
	})
	if got != want {
		t.Fatalf("resolved target: got %+v, want %+v", got, want)
	}
}
