package handlers

import (
	"fmt"
	"log"
	"time"

	"sanitizer-bot/metrics"
	"sanitizer-bot/sanitize"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Proxy frontends answer immediately even when they could not fetch the post,
// so the only reliable failure signal is the embed Discord eventually renders.
// These are the title strings the frontends put on their not-found pages.
const (
	fxTwitterErrorTitle     = "FxTwitter / FixupX"
	instaFixErrorTitle      = "InstaFix"
	instagramLoginWallTitle = "Login • Instagram"
)

const noticeText = "⚠️ The proxy could not produce a working embed for this link."

// Transport is the subset of the Discord session the guardian and the
// pipeline touch. *discordgo.Session satisfies it.
type Transport interface {
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageDelete(interaction *discordgo.Interaction, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionsRemoveEmoji(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

// Guardian watches a freshly posted rewrite until Discord renders its embed,
// and retracts the rewrite when the proxy answered with a failure page or
// never produced an embed at all.
type Guardian struct {
	PollInterval time.Duration
	Timeout      time.Duration
	NoticeTTL    time.Duration
	Metrics      *metrics.Collector
}

// embedAcceptable reports whether a rendered embed is a real post. A video
// embed is always a successful proxy render.
func embedAcceptable(p sanitize.Platform, e *discordgo.MessageEmbed) bool {
	if e.Video != nil && e.Video.URL != "" {
		return true
	}
	switch p {
	case sanitize.PlatformTwitter:
		return e.Title != fxTwitterErrorTitle
	case sanitize.PlatformInstagram:
		return e.Title != instaFixErrorTitle && e.Title != instagramLoginWallTitle
	default:
		return true
	}
}

// awaitEmbed polls until the reply has an embed or the window closes.
// The bool result is true when the embed is acceptable; a closed window with
// no embed counts as a failure for every platform.
func (g *Guardian) awaitEmbed(t Transport, channelID, messageID string, platform sanitize.Platform) bool {
	deadline := time.Now().Add(g.Timeout)
	for {
		msg, err := t.ChannelMessage(channelID, messageID)
		if err != nil {
			// The reply is gone, most likely deleted by a user.
			log.Printf("Guardian could not fetch reply %s: %v", messageID, err)
			return false
		}
		if len(msg.Embeds) > 0 {
			return embedAcceptable(platform, msg.Embeds[0])
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(g.PollInterval)
	}
}

// WatchReply validates a reply posted into a channel. On failure the reply is
// deleted and a short-lived notice is left in its place. On success the
// original message's own embed is suppressed when the policy asks for it.
func (g *Guardian) WatchReply(t Transport, channelID, replyID, originalID string, platform sanitize.Platform, hideOriginal bool) {
	if g.awaitEmbed(t, channelID, replyID, platform) {
		if hideOriginal {
			suppressEmbeds(t, channelID, originalID)
		}
		return
	}

	g.Metrics.RecordEmbedRejected(platform.DisplayName())
	utils.Warn("guardian", fmt.Sprintf("Rejected %s rewrite in channel %s", platform.DisplayName(), channelID))
	if err := t.ChannelMessageDelete(channelID, replyID); err != nil {
		log.Printf("Guardian could not delete rejected reply %s: %v", replyID, err)
		return
	}
	g.postNotice(t, channelID)
}

// WatchFollowup validates an interaction followup message. On failure the
// followup is deleted and the invoker gets an ephemeral apology.
func (g *Guardian) WatchFollowup(t Transport, interaction *discordgo.Interaction, channelID, followupID string, platform sanitize.Platform) {
	if g.awaitEmbed(t, channelID, followupID, platform) {
		return
	}

	g.Metrics.RecordEmbedRejected(platform.DisplayName())
	if err := t.FollowupMessageDelete(interaction, followupID); err != nil {
		log.Printf("Guardian could not delete rejected followup %s: %v", followupID, err)
		return
	}
	_, err := t.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Content: noticeText,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("Guardian could not send followup notice: %v", err)
	}
}

// postNotice leaves a transient failure notice and removes it after the TTL.
func (g *Guardian) postNotice(t Transport, channelID string) {
	notice, err := t.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: noticeText,
		Flags:   discordgo.MessageFlagsSuppressNotifications,
	})
	if err != nil {
		log.Printf("Guardian could not send notice: %v", err)
		return
	}
	time.Sleep(g.NoticeTTL)
	if err := t.ChannelMessageDelete(channelID, notice.ID); err != nil {
		log.Printf("Guardian could not remove notice %s: %v", notice.ID, err)
	}
}

// suppressEmbeds hides the original message's own embed after the rewrite is
// known to be good.
func suppressEmbeds(t Transport, channelID, messageID string) {
	flags := discordgo.MessageFlagsSuppressEmbeds
	_, err := t.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: channelID,
		ID:      messageID,
		Flags:   flags,
	})
	if err != nil {
		log.Printf("Could not suppress embeds on %s: %v", messageID, err)
	}
}
