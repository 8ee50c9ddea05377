package handlers

import (
	"fmt"
	"log"
	"strconv"

	"sanitizer-bot/bot"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(MessageCreate(b))
	b.Session.AddHandler(MessageReactionAdd(b))
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(GuildCreate(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}

// GuildCreate provisions a policy row the moment the bot lands in a guild, so
// the first message does not pay for the insert.
func GuildCreate(b *bot.Bot) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		guildID, err := strconv.ParseUint(g.ID, 10, 64)
		if err != nil {
			return
		}
		if _, err := b.Store.GetServerConfig(guildID); err != nil {
			log.Printf("Could not provision guild %s: %v", g.ID, err)
			return
		}
		utils.Info("guilds", fmt.Sprintf("Joined guild %s (%s)", g.Name, g.ID))
	}
}
