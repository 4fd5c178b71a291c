package embed

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/pkg/booster"
)

// BoosterEmbeds turns booster replies into Discord embeds
type BoosterEmbeds struct {
	*BasicEmbeds
}

// NewBoosterEmbedBuilder creates a new BoosterEmbeds instance
func NewBoosterEmbedBuilder() *BoosterEmbeds {
	return &BoosterEmbeds{BasicEmbeds: NewBasicEmbedBuilder()}
}

// FromReply renders a reply. Errors are red; other replies use the card's
// accent colour and fall back to info blurple. Only absolute http(s) image
// references are attached since Discord cannot fetch anything else.
func (b *BoosterEmbeds) FromReply(reply booster.Reply) *discordgo.MessageEmbed {
	if reply.IsError {
		return b.Error(reply.Title, reply.Description)
	}

	color := reply.AccentColor
	if color == 0 {
		color = colorInfo
	}
	embed := b.build(reply.Title, reply.Description, color)

	if isFetchable(reply.ImageRef) {
		embed.Image = &discordgo.MessageEmbedImage{URL: reply.ImageRef}
	}
	return embed
}

func isFetchable(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}
