package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/internal/version"
)

func versionEmbed() *discordgo.MessageEmbed {
	info := version.Get()

	e := &discordgo.MessageEmbed{
		Title:       "boosterbot Version",
		Description: fmt.Sprintf("`%s`", info.String()),
		Color:       0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: code(info.Version), Inline: true},
			{Name: "Commit", Value: code(info.ShortCommit), Inline: true},
			{Name: "Build Time", Value: code(info.BuildTime), Inline: true},
			{Name: "Go", Value: code(info.GoVersion), Inline: true},
		},
	}
	if info.Dirty {
		e.Footer = &discordgo.MessageEmbedFooter{Text: "⚠️ dirty workspace at build time"}
	}
	return e
}

func code(s string) string {
	if s == "" {
		return "`n/a`"
	}
	return "`" + s + "`"
}
