package handlers

import (
	"log"
	"strconv"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"
	"sanitizer-bot/sanitize"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate routes every incoming message through the trigger decision.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore the bot's own messages before anything else, or every
		// rewrite would feed back into the pipeline.
		if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
			return
		}

		// Direct messages are always sanitized automatically. There is
		// no policy row, no embed to hide on someone else's behalf, and
		// no delete button because the bot cannot manage a DM thread.
		if m.GuildID == "" {
			if !sanitize.ContainsLink(m.Content) {
				return
			}
			policy := models.DefaultGuildPolicy(0)
			policy.HideOriginalEmbed = false
			policy.DeletePermission = models.DeleteDisabled
			b.Go(func() { sanitizeMessage(b, s, m.Message, policy, false) })
			return
		}

		mentioned := mentionsUser(m.Mentions, s.State.User.ID)
		ownHasLink := sanitize.ContainsLink(m.Content)
		isReply := m.Type == discordgo.MessageTypeReply && m.MessageReference != nil
		// A reply is implicit intent in the mention modes, so it must
		// reach the policy lookup even without a link or mention.
		if !ownHasLink && !mentioned && !isReply {
			return
		}

		guildID, err := strconv.ParseUint(m.GuildID, 10, 64)
		if err != nil {
			log.Printf("Unparseable guild ID %q: %v", m.GuildID, err)
			return
		}
		policy := b.Cache.GetOrFetch(guildID)

		var referenced *discordgo.Message
		refHasLink := false
		if isReply && policy.SanitizerMode.UsesMention() && !ownHasLink {
			referenced = m.ReferencedMessage
			if referenced == nil {
				referenced, err = s.ChannelMessage(m.MessageReference.ChannelID, m.MessageReference.MessageID)
				if err != nil {
					log.Printf("Could not fetch referenced message: %v", err)
				}
			}
			refHasLink = referenced != nil && sanitize.ContainsLink(referenced.Content)
		}

		// In the combined mode the target may already carry a marker
		// from an earlier pass; strip it along with the reply.
		stripMarker := policy.SanitizerMode.UsesMarker()

		action := DecideTrigger(policy.SanitizerMode, ownHasLink, mentioned, isReply, refHasLink)
		switch action {
		case ActionSanitize:
			if StripReferencedMarker(policy.SanitizerMode, action, isReply) {
				removeMarker(b, s, m.MessageReference.ChannelID, m.MessageReference.MessageID)
			}
			b.Go(func() { sanitizeMessage(b, s, m.Message, policy, stripMarker) })
		case ActionSanitizeReferenced:
			target := referenced
			b.Go(func() { sanitizeMessage(b, s, target, policy, stripMarker) })
		case ActionAddMarker:
			if err := s.MessageReactionAdd(m.ChannelID, m.ID, b.MarkerEmojiAPIName()); err != nil {
				log.Printf("Could not add marker reaction to %s: %v", m.ID, err)
				return
			}
			b.Metrics.RecordMarkerAdded()
		}
	}
}

func mentionsUser(mentions []*discordgo.User, userID string) bool {
	for _, u := range mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}
