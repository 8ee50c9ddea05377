package command

import "github.com/bwmarrin/discordgo"

// SanitizeCommand defines the /sanitize slash command.
type SanitizeCommand struct{}

// Definition returns the application command definition.
func (c *SanitizeCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sanitize",
		Description: "Rewrite a link to an embed-friendly form",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "link",
				Description: "The link to rewrite",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				MaxLength:   100,
			},
		},
	}
}

// SanitizeMessageCommand defines the "Sanitize" message context command.
type SanitizeMessageCommand struct{}

// Definition returns the application command definition.
func (c *SanitizeMessageCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: "Sanitize",
		Type: discordgo.MessageApplicationCommand,
	}
}

// SettingsCommand defines the /settings slash command.
type SettingsCommand struct{}

// Definition returns the application command definition.
func (c *SettingsCommand) Definition() *discordgo.ApplicationCommand {
	dmPermission := false
	return &discordgo.ApplicationCommand{
		Name:         "settings",
		Description:  "Configure how links are sanitized in this server",
		DMPermission: &dmPermission,
	}
}

// CreditsCommand defines the /credits slash command.
type CreditsCommand struct{}

// Definition returns the application command definition.
func (c *CreditsCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "credits",
		Description: "Show the services this bot is built on",
	}
}
