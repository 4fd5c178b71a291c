package embed

import (
	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/pkg/booster"
)

// EmbedBuilder provides basic embed creation functionality
type EmbedBuilder interface {
	Success(title, description string) *discordgo.MessageEmbed
	Error(title, description string) *discordgo.MessageEmbed
	Info(title, description string) *discordgo.MessageEmbed
	Warning(title, description string) *discordgo.MessageEmbed
}

// BoosterEmbedBuilder renders booster replies
type BoosterEmbedBuilder interface {
	EmbedBuilder
	FromReply(reply booster.Reply) *discordgo.MessageEmbed
}

// EmbedFactory creates embed builders
type EmbedFactory interface {
	CreateBasicEmbedBuilder() EmbedBuilder
	CreateBoosterEmbedBuilder() BoosterEmbedBuilder
}
