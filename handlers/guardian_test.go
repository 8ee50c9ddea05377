package handlers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"sanitizer-bot/metrics"
	"sanitizer-bot/sanitize"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
)

// fakeTransport is an in-memory channel of messages keyed by ID.
type fakeTransport struct {
	mu              sync.Mutex
	messages        map[string]*discordgo.Message
	nextID          int
	edits           []*discordgo.MessageEdit
	deleted         []string
	followupDeleted []string
	followups       []*discordgo.WebhookParams
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{messages: map[string]*discordgo.Message{}}
}

func (f *fakeTransport) put(msg *discordgo.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[msg.ID] = msg
}

func (f *fakeTransport) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[messageID]
	if !ok {
		return nil, fmt.Errorf("unknown message %s", messageID)
	}
	return msg, nil
}

func (f *fakeTransport) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[messageID]; !ok {
		return fmt.Errorf("unknown message %s", messageID)
	}
	delete(f.messages, messageID)
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTransport) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg := &discordgo.Message{
		ID:        fmt.Sprintf("sent-%d", f.nextID),
		ChannelID: channelID,
		Content:   data.Content,
	}
	f.messages[msg.ID] = msg
	return msg, nil
}

func (f *fakeTransport) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, m)
	return f.messages[m.ID], nil
}

func (f *fakeTransport) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followups = append(f.followups, data)
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("followup-%d", f.nextID)}, nil
}

func (f *fakeTransport) FollowupMessageDelete(_ *discordgo.Interaction, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, messageID)
	f.followupDeleted = append(f.followupDeleted, messageID)
	return nil
}

func (f *fakeTransport) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeTransport) MessageReactionsRemoveEmoji(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	return nil
}

func testGuardian() *Guardian {
	return &Guardian{
		PollInterval: time.Millisecond,
		Timeout:      20 * time.Millisecond,
		NoticeTTL:    5 * time.Millisecond,
		Metrics:      metrics.NewCollector(prometheus.NewRegistry()),
	}
}

func TestGuardianAcceptsRenderedEmbed(t *testing.T) {
	ft := newFakeTransport()
	ft.put(&discordgo.Message{ID: "orig", ChannelID: "ch"})
	ft.put(&discordgo.Message{ID: "reply", ChannelID: "ch", Embeds: []*discordgo.MessageEmbed{
		{Title: "some post", URL: "https://fxtwitter.com/u/status/1"},
	}})

	testGuardian().WatchReply(ft, "ch", "reply", "orig", sanitize.PlatformTwitter, true)

	if len(ft.deleted) != 0 {
		t.Fatalf("valid reply was deleted: %v", ft.deleted)
	}
	if len(ft.edits) != 1 || ft.edits[0].ID != "orig" {
		t.Fatalf("expected one suppress edit on the original, got %+v", ft.edits)
	}
	if ft.edits[0].Flags&discordgo.MessageFlagsSuppressEmbeds == 0 {
		t.Fatal("suppress edit is missing the suppress-embeds flag")
	}
}

func TestGuardianKeepsOriginalEmbedWhenPolicySaysSo(t *testing.T) {
	ft := newFakeTransport()
	ft.put(&discordgo.Message{ID: "orig", ChannelID: "ch"})
	ft.put(&discordgo.Message{ID: "reply", ChannelID: "ch", Embeds: []*discordgo.MessageEmbed{
		{Video: &discordgo.MessageEmbedVideo{URL: "https://cdn.example/v.mp4"}},
	}})

	testGuardian().WatchReply(ft, "ch", "reply", "orig", sanitize.PlatformTikTok, false)

	if len(ft.edits) != 0 {
		t.Fatalf("original was edited despite hideOriginal=false: %+v", ft.edits)
	}
}

func TestGuardianAcceptsVideoEmbedDespiteErrorTitle(t *testing.T) {
	ft := newFakeTransport()
	ft.put(&discordgo.Message{ID: "reply", ChannelID: "ch", Embeds: []*discordgo.MessageEmbed{
		{Title: instaFixErrorTitle, Video: &discordgo.MessageEmbedVideo{URL: "https://cdn.example/v.mp4"}},
	}})

	testGuardian().WatchReply(ft, "ch", "reply", "orig", sanitize.PlatformInstagram, false)

	if len(ft.deleted) != 0 {
		t.Fatalf("video embed was rejected: %v", ft.deleted)
	}
}

func TestGuardianRejectsFailureSignature(t *testing.T) {
	for _, tc := range []struct {
		platform sanitize.Platform
		title    string
	}{
		{sanitize.PlatformTwitter, fxTwitterErrorTitle},
		{sanitize.PlatformInstagram, instaFixErrorTitle},
		{sanitize.PlatformInstagram, instagramLoginWallTitle},
	} {
		ft := newFakeTransport()
		ft.put(&discordgo.Message{ID: "reply", ChannelID: "ch", Embeds: []*discordgo.MessageEmbed{
			{Title: tc.title},
		}})

		testGuardian().WatchReply(ft, "ch", "reply", "orig", tc.platform, true)

		if len(ft.deleted) < 1 || ft.deleted[0] != "reply" {
			t.Fatalf("%q: reply was not deleted, deletions: %v", tc.title, ft.deleted)
		}
		if len(ft.edits) != 0 {
			t.Fatalf("%q: original must not be suppressed after a rejection", tc.title)
		}
	}
}

// A reply whose embed never materializes is treated as a failure on every
// platform: the reply is deleted and the notice is cleaned up after its TTL.
func TestGuardianTimeoutDeletesReplyAndCleansNotice(t *testing.T) {
	ft := newFakeTransport()
	ft.put(&discordgo.Message{ID: "reply", ChannelID: "ch"})

	testGuardian().WatchReply(ft, "ch", "reply", "orig", sanitize.PlatformReddit, true)

	if len(ft.deleted) != 2 {
		t.Fatalf("expected reply and notice deletions, got %v", ft.deleted)
	}
	if ft.deleted[0] != "reply" {
		t.Fatalf("first deletion should be the reply, got %v", ft.deleted)
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if len(ft.messages) != 0 {
		t.Fatalf("no messages should remain, got %d", len(ft.messages))
	}
}

func TestGuardianFollowupFailureApologizesEphemerally(t *testing.T) {
	ft := newFakeTransport()
	ft.put(&discordgo.Message{ID: "followup", ChannelID: "ch"})

	g := testGuardian()
	g.WatchFollowup(ft, &discordgo.Interaction{}, "ch", "followup", sanitize.PlatformTwitch)

	if len(ft.followupDeleted) != 1 || ft.followupDeleted[0] != "followup" {
		t.Fatalf("followup was not deleted: %v", ft.followupDeleted)
	}
	if len(ft.followups) != 1 {
		t.Fatalf("expected one apology followup, got %d", len(ft.followups))
	}
	if ft.followups[0].Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatal("apology must be ephemeral")
	}
}
