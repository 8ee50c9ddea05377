package main

import (
	"sanitizer-bot/bot"
	"sanitizer-bot/command"
	"sanitizer-bot/handlers"
)

func main() {
	bot.Run(handlers.Register, command.GetCommandDefinitions())
}
