package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/pkg/booster"
)

// Informational commands handled outside the booster service
const (
	CmdAbout   = "pc-about"
	CmdVersion = "pc-version"
)

func cardOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        booster.ArgCard,
		Description: description,
		Required:    true,
	}
}

func userOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        booster.ArgUser,
		Description: "Discord ID or mention of the player",
		Required:    true,
	}
}

// Definitions returns every slash command the bot registers
func Definitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        string(booster.CmdOpen),
			Description: "Open a booster.",
		},
		{
			Name:        string(booster.CmdCollection),
			Description: "Show your card collection.",
		},
		{
			Name:        string(booster.CmdList),
			Description: "List every available card.",
		},
		{
			Name:        string(booster.CmdSee),
			Description: "Show the details of one card.",
			Options:     []*discordgo.ApplicationCommandOption{cardOption("Name of the card to show")},
		},
		{
			Name:        string(booster.CmdResetCooldown),
			Description: "Reset a player's booster cooldown (staff only).",
			Options:     []*discordgo.ApplicationCommandOption{userOption()},
		},
		{
			Name:        string(booster.CmdGrant),
			Description: "Give a card to a player (staff only).",
			Options: []*discordgo.ApplicationCommandOption{
				userOption(),
				cardOption("Name of the card to give"),
			},
		},
		{
			Name:        string(booster.CmdRevoke),
			Description: "Take one copy of a card from a player (staff only).",
			Options: []*discordgo.ApplicationCommandOption{
				userOption(),
				cardOption("Name of the card to take"),
			},
		},
		{
			Name:        CmdAbout,
			Description: "Show information about the bot.",
		},
		{
			Name:        CmdVersion,
			Description: "Show the bot version.",
		},
	}
}

// Register overwrites the application's commands with Definitions. An empty
// guildID registers them globally.
func Register(s *discordgo.Session, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	return s.ApplicationCommandBulkOverwrite(appID, guildID, Definitions())
}

// staffCommands need IsAuthorized to be resolved
var staffCommands = map[booster.CommandKind]bool{
	booster.CmdResetCooldown: true,
	booster.CmdGrant:         true,
	booster.CmdRevoke:        true,
}

var boosterCommands = map[string]booster.CommandKind{
	string(booster.CmdOpen):          booster.CmdOpen,
	string(booster.CmdCollection):    booster.CmdCollection,
	string(booster.CmdList):          booster.CmdList,
	string(booster.CmdSee):           booster.CmdSee,
	string(booster.CmdResetCooldown): booster.CmdResetCooldown,
	string(booster.CmdGrant):         booster.CmdGrant,
	string(booster.CmdRevoke):        booster.CmdRevoke,
}
