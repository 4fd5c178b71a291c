package commands

import (
	"github.com/bwmarrin/discordgo"
)

// isStaff reports whether member holds the role named staffRole, or has the
// Administrator permission in the channel.
func isStaff(member *discordgo.Member, roles []*discordgo.Role, staffRole string) bool {
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	held := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = true
	}
	for _, role := range roles {
		if role != nil && held[role.ID] && role.Name == staffRole {
			return true
		}
	}
	return false
}

// guildRoles prefers the state cache and falls back to the REST API
func guildRoles(s *discordgo.Session, guildID string) ([]*discordgo.Role, error) {
	if s.State != nil {
		if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
			return guild.Roles, nil
		}
	}
	return s.GuildRoles(guildID)
}
