package handlers

import (
	"log"
	"strconv"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"
	"sanitizer-bot/sanitize"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleSanitize implements the /sanitize slash command: rewrite a link given
// as an option and post the result publicly.
func HandleSanitize(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	var input string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "link" {
			input = opt.StringValue()
		}
	}

	if !sanitize.ContainsLink(input) {
		respondEphemeral(s, i, "🚫 That does not look like a link from a supported platform.")
		return
	}

	// The author lookup can take a few seconds, so acknowledge first.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("Could not defer /sanitize: %v", err)
		return
	}

	b.Go(func() {
		ctx, cancel := lookupContext()
		defer cancel()

		link := b.Rewriter.Rewrite(ctx, input)
		if link == nil {
			followupEphemeral(s, i, "🚫 That link could not be rewritten.")
			return
		}

		msg, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content:         link.Caption(),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		})
		if err != nil {
			log.Printf("Could not post /sanitize followup: %v", err)
			return
		}
		b.Metrics.RecordSanitized(link.Platform.DisplayName())
		newGuardian(b).WatchFollowup(s, i.Interaction, msg.ChannelID, msg.ID, link.Platform)
	})
}

// resolvedTargetMessage pulls the target message out of a context-menu
// interaction, tolerating absent resolved data.
func resolvedTargetMessage(data discordgo.ApplicationCommandInteractionData) *discordgo.Message {
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Messages[data.TargetID]
}

// HandleSanitizeContext implements the "Sanitize" message context command.
func HandleSanitizeContext(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	target := resolvedTargetMessage(data)
	if target == nil || !sanitize.ContainsLink(target.Content) {
		respondEphemeral(s, i, "🚫 No supported link in that message.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("Could not defer context sanitize: %v", err)
		return
	}

	b.Go(func() {
		ctx, cancel := lookupContext()
		defer cancel()

		link := b.Rewriter.Rewrite(ctx, target.Content)
		if link == nil {
			followupEphemeral(s, i, "🚫 That link could not be rewritten.")
			return
		}

		msg, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content:         link.Caption(),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		})
		if err != nil {
			log.Printf("Could not post context sanitize followup: %v", err)
			return
		}
		b.Metrics.RecordSanitized(link.Platform.DisplayName())
		newGuardian(b).WatchFollowup(s, i.Interaction, msg.ChannelID, msg.ID, link.Platform)
	})
}

// HandleSettings shows the guild policy menus. Manage Server only.
func HandleSettings(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "🚫 Settings only exist inside a server.")
		return
	}
	if !utils.HasManageServer(i) {
		respondEphemeral(s, i, "🚫 You need the Manage Server permission to change settings.")
		return
	}

	guildID, err := strconv.ParseUint(i.GuildID, 10, 64)
	if err != nil {
		respondEphemeral(s, i, "🚫 Internal error.")
		return
	}
	policy := b.Cache.GetOrFetch(guildID)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{settingsEmbed(policy)},
			Components: []discordgo.MessageComponent{
				modeSelectRow(policy.SanitizerMode),
				deletePermissionSelectRow(policy.DeletePermission),
				hideEmbedSelectRow(policy.HideOriginalEmbed),
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Could not respond to /settings: %v", err)
	}
}

// HandleCredits shows the attribution embed.
func HandleCredits(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "Credits",
		Description: "Link rewriting is powered by the community proxy frontends:\n" +
			"• [FxTwitter](https://github.com/FixTweet/FxTwitter)\n" +
			"• [InstaFix](https://github.com/Wikidepia/InstaFix)\n" +
			"• [fxreddit](https://github.com/MinnDevelopment/fxreddit)\n" +
			"• [fxtiktok](https://github.com/okdargy/fxTikTok)\n" +
			"• [fxtwitch](https://github.com/seriaati/fxtwitch)",
		Color: 0x5865f2,
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Could not respond to /credits: %v", err)
	}
}

func followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("Could not send followup: %v", err)
	}
}

func settingsEmbed(policy models.GuildPolicy) *discordgo.MessageEmbed {
	hide := "Yes"
	if !policy.HideOriginalEmbed {
		hide = "No"
	}
	return &discordgo.MessageEmbed{
		Title: "Sanitizer Settings",
		Color: 0x5865f2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Sanitizer mode", Value: policy.SanitizerMode.DisplayName(), Inline: true},
			{Name: "Delete permission", Value: policy.DeletePermission.DisplayName(), Inline: true},
			{Name: "Hide original embed", Value: hide, Inline: true},
		},
	}
}
