package commands

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/latoulicious/boosterbot/pkg/embed"
	"github.com/latoulicious/boosterbot/pkg/logging"
)

// Handler turns slash command interactions into booster invocations
type Handler struct {
	service   *booster.Service
	staffRole string
	embeds    embed.BoosterEmbedBuilder
	started   time.Time
}

// NewHandler creates a handler; staffRole is the role name allowed to run
// the pco-* commands.
func NewHandler(service *booster.Service, staffRole string) *Handler {
	return &Handler{
		service:   service,
		staffRole: staffRole,
		embeds:    embed.CreateBoosterEmbeds(),
		started:   time.Now(),
	}
}

// OnInteraction is registered with discordgo's AddHandler
func (h *Handler) OnInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	userID := interactionUserID(i)
	logger := logging.GetGlobalLoggerFactory().CreateCommandLogger(data.Name).
		WithInteraction(i.GuildID, userID, i.ChannelID)

	logger.Info("Slash command received", map[string]interface{}{
		"options": len(data.Options),
	})

	switch data.Name {
	case CmdAbout:
		h.respond(s, i, aboutEmbed(h.started, s.HeartbeatLatency()), false, logger)
		return
	case CmdVersion:
		h.respond(s, i, versionEmbed(), false, logger)
		return
	}

	kind, ok := boosterCommands[data.Name]
	if !ok {
		logger.Warn("Unknown slash command", nil)
		return
	}

	inv := buildInvocation(kind, userID, data.Options)
	if staffCommands[kind] {
		inv.IsAuthorized = h.authorize(s, i, logger)
	}

	reply := h.service.Handle(inv)
	h.respond(s, i, h.embeds.FromReply(reply), reply.IsError, logger)
}

func (h *Handler) authorize(s *discordgo.Session, i *discordgo.InteractionCreate, logger logging.Logger) bool {
	if i.Member == nil || i.GuildID == "" {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	roles, err := guildRoles(s, i.GuildID)
	if err != nil {
		logger.Error("Failed to fetch guild roles", err, nil)
		return false
	}
	return isStaff(i.Member, roles, h.staffRole)
}

// respond sends one embed; errors are only shown to the caller
func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, e *discordgo.MessageEmbed, private bool, logger logging.Logger) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{e},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
	if private {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logger.Error("Failed to respond to interaction", err, nil)
	}
}

// interactionUserID is the member's user in a guild and the plain user in DMs
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func buildInvocation(kind booster.CommandKind, userID string, options []*discordgo.ApplicationCommandInteractionDataOption) booster.Invocation {
	args := make(map[string]string, len(options))
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			args[opt.Name] = opt.StringValue()
		}
	}
	return booster.Invocation{
		Kind:   kind,
		UserID: userID,
		Args:   args,
	}
}
