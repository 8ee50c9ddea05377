package handlers

import (
	"context"
	"log"
	"time"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"
	"sanitizer-bot/sanitize"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// deleteButtonID is the custom_id of the retraction button under each reply.
const deleteButtonID = "delete"

func newGuardian(b *bot.Bot) *Guardian {
	return &Guardian{
		PollInterval: time.Duration(viper.GetInt("guardian.pollIntervalMs")) * time.Millisecond,
		Timeout:      time.Duration(viper.GetInt("guardian.timeoutMs")) * time.Millisecond,
		NoticeTTL:    10 * time.Second,
		Metrics:      b.Metrics,
	}
}

func deleteButtonRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Style:    discordgo.DangerButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🗑"},
				CustomID: deleteButtonID,
			},
		},
	}
}

// sanitizeMessage rewrites the link in target and posts the rewrite as a
// reply. It runs the guardian to completion, so callers invoke it from a
// goroutine. stripMarker removes the marker reactions once the reply is out,
// for the reaction-confirmed flow.
func sanitizeMessage(b *bot.Bot, t Transport, target *discordgo.Message, policy models.GuildPolicy, stripMarker bool) {
	ctx, cancel := lookupContext()
	defer cancel()

	link := b.Rewriter.Rewrite(ctx, target.Content)
	if link == nil {
		return
	}
	if link.Username == "" && needsAuthor(link.Platform) {
		b.Metrics.RecordLookupFailure()
	}

	send := &discordgo.MessageSend{
		Content: link.Caption(),
		Reference: &discordgo.MessageReference{
			MessageID: target.ID,
			ChannelID: target.ChannelID,
			GuildID:   target.GuildID,
		},
		// The reply must never ping the original author or anyone the
		// caption happens to name.
		AllowedMentions: &discordgo.MessageAllowedMentions{},
		Flags:           discordgo.MessageFlagsSuppressNotifications,
	}
	if policy.DeletePermission != models.DeleteDisabled {
		send.Components = []discordgo.MessageComponent{deleteButtonRow()}
	}

	reply, err := t.ChannelMessageSendComplex(target.ChannelID, send)
	if err != nil {
		log.Printf("Could not post rewrite in %s: %v", target.ChannelID, err)
		return
	}
	b.Metrics.RecordSanitized(link.Platform.DisplayName())

	if stripMarker {
		removeMarker(b, t, target.ChannelID, target.ID)
	}

	newGuardian(b).WatchReply(t, target.ChannelID, reply.ID, target.ID, link.Platform, policy.HideOriginalEmbed)
}

// removeMarker clears every marker reaction from a message.
func removeMarker(b *bot.Bot, t Transport, channelID, messageID string) {
	if err := t.MessageReactionsRemoveEmoji(channelID, messageID, b.MarkerEmojiAPIName()); err != nil {
		log.Printf("Could not strip marker reactions from %s: %v", messageID, err)
	}
}

// lookupContext bounds the author lookup a little above the HTTP client's
// own timeout so the rewrite never hangs on a dead upstream.
func lookupContext() (context.Context, context.CancelFunc) {
	budget := time.Duration(viper.GetInt("lookup.timeoutMs"))*time.Millisecond + time.Second
	return context.WithTimeout(context.Background(), budget)
}

// needsAuthor reports whether the caption for a platform normally carries a
// handle that only the author lookup can provide.
func needsAuthor(p sanitize.Platform) bool {
	return p == sanitize.PlatformTikTok || p == sanitize.PlatformTwitch
}
