package handlers

import (
	"log"
	"strconv"

	"sanitizer-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// MessageReactionAdd confirms a marker-primed message once a user reacts with
// the marker emoji.
func MessageReactionAdd(b *bot.Bot) func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.UserID == s.State.User.ID {
			return
		}
		if r.Emoji.ID != b.MarkerEmojiID || r.GuildID == "" {
			return
		}

		guildID, err := strconv.ParseUint(r.GuildID, 10, 64)
		if err != nil {
			return
		}
		policy := b.Cache.GetOrFetch(guildID)
		if !policy.SanitizerMode.UsesMarker() {
			return
		}

		msg, err := s.ChannelMessage(r.ChannelID, r.MessageID)
		if err != nil {
			log.Printf("Could not fetch marked message %s: %v", r.MessageID, err)
			return
		}

		// Only messages the bot itself primed count. Anyone can slap the
		// emoji on an arbitrary message; without the bot's own reaction
		// it is noise.
		if !botHasMarked(msg, b.MarkerEmojiID) {
			return
		}

		b.Go(func() { sanitizeMessage(b, s, msg, policy, true) })
	}
}

func botHasMarked(msg *discordgo.Message, emojiID string) bool {
	for _, reaction := range msg.Reactions {
		if reaction.Emoji != nil && reaction.Emoji.ID == emojiID && reaction.Me {
			return true
		}
	}
	return false
}
