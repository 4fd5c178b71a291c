package embed

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	colorSuccess = 0x00ff00 // Green
	colorError   = 0xff0000 // Red
	colorInfo    = 0x7289da // Discord blurple
	colorWarning = 0xffaa00 // Orange
)

// BasicEmbeds implements EmbedBuilder
type BasicEmbeds struct {
	now func() time.Time
}

// NewBasicEmbedBuilder creates a new BasicEmbeds instance
func NewBasicEmbedBuilder() *BasicEmbeds {
	return &BasicEmbeds{now: time.Now}
}

// Success creates a standard success embed
func (b *BasicEmbeds) Success(title, description string) *discordgo.MessageEmbed {
	return b.build(title, description, colorSuccess)
}

// Error creates a standard error embed
func (b *BasicEmbeds) Error(title, description string) *discordgo.MessageEmbed {
	return b.build(title, description, colorError)
}

// Info creates an info embed
func (b *BasicEmbeds) Info(title, description string) *discordgo.MessageEmbed {
	return b.build(title, description, colorInfo)
}

// Warning creates a warning embed
func (b *BasicEmbeds) Warning(title, description string) *discordgo.MessageEmbed {
	return b.build(title, description, colorWarning)
}

func (b *BasicEmbeds) build(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   b.now().Format(time.RFC3339),
	}
}
