package handlers

import (
	"log"

	"sanitizer-bot/bot"
	"sanitizer-bot/models"

	"github.com/bwmarrin/discordgo"
)

// InteractionCreate dispatches application commands and component
// interactions.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			dispatchCommand(b, s, i)
		case discordgo.InteractionMessageComponent:
			dispatchComponent(b, s, i)
		}
	}
}

func dispatchCommand(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "sanitize":
		HandleSanitize(b, s, i)
	case "Sanitize":
		HandleSanitizeContext(b, s, i)
	case "settings":
		HandleSettings(b, s, i)
	case "credits":
		HandleCredits(s, i)
	default:
		log.Printf("Unknown command %q", i.ApplicationCommandData().Name)
		respondEphemeral(s, i, "🚫 Unknown command.")
	}
}

func dispatchComponent(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if customID == deleteButtonID {
		HandleDeleteButton(b, s, i)
		return
	}

	menu, err := models.ParseSettingsMenu(customID)
	if err != nil {
		log.Printf("Unknown component %q", customID)
		respondEphemeral(s, i, "🚫 Unknown component.")
		return
	}
	HandleSettingsSelect(b, s, i, menu)
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Could not respond to interaction: %v", err)
	}
}
