package handlers

import (
	"fmt"
	"log"
	"strconv"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func modeSelectRow(current models.SanitizerMode) discordgo.ActionsRow {
	modes := []models.SanitizerMode{
		models.ModeAutomatic,
		models.ModeManualEmote,
		models.ModeManualMention,
		models.ModeManualBoth,
	}
	options := make([]discordgo.SelectMenuOption, len(modes))
	for idx, m := range modes {
		options[idx] = discordgo.SelectMenuOption{
			Label:   m.DisplayName(),
			Value:   m.ComponentID(),
			Default: m == current,
		}
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			CustomID:    models.MenuSanitizerMode.CustomID(),
			Placeholder: "Sanitizer mode",
			Options:     options,
		},
	}}
}

func deletePermissionSelectRow(current models.DeletePermission) discordgo.ActionsRow {
	perms := []models.DeletePermission{
		models.DeleteAuthorAndMods,
		models.DeleteEveryone,
		models.DeleteDisabled,
	}
	options := make([]discordgo.SelectMenuOption, len(perms))
	for idx, p := range perms {
		options[idx] = discordgo.SelectMenuOption{
			Label:   p.DisplayName(),
			Value:   p.ComponentID(),
			Default: p == current,
		}
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			CustomID:    models.MenuDeletePermission.CustomID(),
			Placeholder: "Who can delete replies",
			Options:     options,
		},
	}}
}

func hideEmbedSelectRow(current bool) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			CustomID:    models.MenuHideOriginalEmbed.CustomID(),
			Placeholder: "Hide the original embed",
			Options: []discordgo.SelectMenuOption{
				{Label: "Hide the original embed", Value: "true", Default: current},
				{Label: "Keep the original embed", Value: "false", Default: !current},
			},
		},
	}}
}

// HandleSettingsSelect applies one settings menu selection to the guild
// policy.
func HandleSettingsSelect(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, menu models.SettingsMenu) {
	if i.GuildID == "" {
		respondEphemeral(s, i, "🚫 Settings only exist inside a server.")
		return
	}
	if !utils.HasManageServer(i) {
		respondEphemeral(s, i, "🚫 You need the Manage Server permission to change settings.")
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		respondEphemeral(s, i, "🚫 Nothing selected.")
		return
	}
	value := values[0]

	guildID, err := strconv.ParseUint(i.GuildID, 10, 64)
	if err != nil {
		respondEphemeral(s, i, "🚫 Internal error.")
		return
	}
	policy := b.Cache.GetOrFetch(guildID)

	var label string
	switch menu {
	case models.MenuSanitizerMode:
		mode, err := models.ParseSanitizerMode(value)
		if err != nil {
			respondEphemeral(s, i, "🚫 Unknown option.")
			return
		}
		policy.SanitizerMode = mode
		label = mode.DisplayName()
	case models.MenuDeletePermission:
		perm, err := models.ParseDeletePermission(value)
		if err != nil {
			respondEphemeral(s, i, "🚫 Unknown option.")
			return
		}
		policy.DeletePermission = perm
		label = perm.DisplayName()
	case models.MenuHideOriginalEmbed:
		hide, err := strconv.ParseBool(value)
		if err != nil {
			respondEphemeral(s, i, "🚫 Unknown option.")
			return
		}
		policy.HideOriginalEmbed = hide
		if hide {
			label = "hide the original embed"
		} else {
			label = "keep the original embed"
		}
	}

	// The cache keeps the new value even when the durable write fails, so
	// the guild sees its choice take effect immediately.
	if err := b.Cache.Update(guildID, policy); err != nil {
		log.Printf("Could not persist settings for guild %d: %v", guildID, err)
		utils.Error("settings", fmt.Sprintf("guild %d: %v", guildID, err))
		respondEphemeral(s, i, fmt.Sprintf("⚠️ Switched to %s, but the change could not be saved and may revert after a restart.", label))
		return
	}

	b.Replica.SyncAsync()
	respondEphemeral(s, i, fmt.Sprintf("✅ Switched to %s.", label))
}
