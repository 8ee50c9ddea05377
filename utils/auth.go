package utils

import (
	"github.com/bwmarrin/discordgo"
)

// HasManageServer reports whether the interaction member can manage the guild.
func HasManageServer(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&discordgo.PermissionManageServer != 0
}

// HasManageMessages reports whether the interaction member can manage messages.
func HasManageMessages(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&discordgo.PermissionManageMessages != 0
}

// InteractionUserID returns the acting user's ID for both guild and DM
// interactions.
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
