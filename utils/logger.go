package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var (
	session   *discordgo.Session
	channelID string
)

// InitLogger wires the admin-channel logger to a Discord session.
// 若未配置 bot.adminChannelId，则仅输出到标准日志。
func InitLogger(s *discordgo.Session) {
	session = s
	channelID = viper.GetString("bot.adminChannelId")
	if channelID == "" {
		log.Println("Warning: bot.adminChannelId is not set, channel logging disabled")
	}
}

func send(level, component, details string, color int) {
	log.Printf("[%s] %s: %s", level, component, details)
	if session == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Sanitizer %s", level),
		Description: details,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "组件",
				Value:  component,
				Inline: true,
			},
		},
	}

	if _, err := session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Error sending log message to Discord: %v", err)
	}
}

// Info logs an informational message.
func Info(component, details string) {
	send("INFO", component, details, ColorInfo)
}

// Warn logs a warning message.
func Warn(component, details string) {
	send("WARN", component, details, ColorWarn)
}

// Error logs an error message.
func Error(component, details string) {
	send("ERROR", component, details, ColorError)
}
