package handlers

import (
	"log"
	"strconv"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleDeleteButton retracts a rewrite when the clicker is allowed to.
func HandleDeleteButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	reply := i.Message
	if reply == nil {
		return
	}

	original := referencedMessage(s, reply)

	policy := models.DefaultGuildPolicy(0)
	if i.GuildID != "" {
		guildID, err := strconv.ParseUint(i.GuildID, 10, 64)
		if err != nil {
			respondEphemeral(s, i, "🚫 Internal error.")
			return
		}
		policy = b.Cache.GetOrFetch(guildID)
	}

	if !mayDelete(policy, i, original) {
		respondEphemeral(s, i, "🚫 Only the original author or a moderator can remove this.")
		return
	}

	// Acknowledge before deleting; the interaction dies with its message.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Could not acknowledge delete button: %v", err)
	}

	if err := s.ChannelMessageDelete(reply.ChannelID, reply.ID); err != nil {
		log.Printf("Could not delete rewrite %s: %v", reply.ID, err)
		return
	}

	// Bring the original embed back now that the rewrite is gone.
	if policy.HideOriginalEmbed && original != nil {
		unsuppressEmbeds(s, original.ChannelID, original.ID)
	}
}

func referencedMessage(s *discordgo.Session, reply *discordgo.Message) *discordgo.Message {
	if reply.ReferencedMessage != nil {
		return reply.ReferencedMessage
	}
	if reply.MessageReference == nil {
		return nil
	}
	msg, err := s.ChannelMessage(reply.MessageReference.ChannelID, reply.MessageReference.MessageID)
	if err != nil {
		log.Printf("Could not fetch original for delete check: %v", err)
		return nil
	}
	return msg
}

// mayDelete applies the guild's delete permission to the clicking user.
// Outside a guild the clicker is always allowed; the reply lives in their DM.
func mayDelete(policy models.GuildPolicy, i *discordgo.InteractionCreate, original *discordgo.Message) bool {
	if i.GuildID == "" {
		return true
	}
	switch policy.DeletePermission {
	case models.DeleteDisabled:
		// A stale button on a reply posted before the setting changed.
		return false
	case models.DeleteEveryone:
		return true
	default:
		if original != nil && original.Author != nil && original.Author.ID == utils.InteractionUserID(i) {
			return true
		}
		return utils.HasManageMessages(i)
	}
}

// unsuppressEmbeds clears the message flags outright. MessageEdit cannot
// express "flags: 0" over the wire, so this goes through the raw endpoint.
func unsuppressEmbeds(s *discordgo.Session, channelID, messageID string) {
	body := struct {
		Flags int `json:"flags"`
	}{0}
	_, err := s.RequestWithBucketID(
		"PATCH",
		discordgo.EndpointChannelMessage(channelID, messageID),
		body,
		discordgo.EndpointChannelMessage(channelID, ""),
	)
	if err != nil {
		log.Printf("Could not restore embeds on %s: %v", messageID, err)
	}
}
