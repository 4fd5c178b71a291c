package commands

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()

	names := make(map[string]*discordgo.ApplicationCommand, len(defs))
	for _, d := range defs {
		require.NotContains(t, names, d.Name, "duplicate command")
		assert.NotEmpty(t, d.Description, d.Name)
		assert.LessOrEqual(t, len(d.Description), 100, d.Name)
		names[d.Name] = d
	}

	for name := range boosterCommands {
		assert.Contains(t, names, name)
	}
	assert.Contains(t, names, CmdAbout)
	assert.Contains(t, names, CmdVersion)

	see := names[string(booster.CmdSee)]
	require.Len(t, see.Options, 1)
	assert.Equal(t, booster.ArgCard, see.Options[0].Name)
	assert.True(t, see.Options[0].Required)

	grant := names[string(booster.CmdGrant)]
	require.Len(t, grant.Options, 2)
	assert.Equal(t, booster.ArgUser, grant.Options[0].Name)
	assert.Equal(t, booster.ArgCard, grant.Options[1].Name)
}

func TestIsStaff(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "r1", Name: "Member"},
		{ID: "r2", Name: "Staff"},
	}

	tests := []struct {
		name   string
		member *discordgo.Member
		want   bool
	}{
		{"nil member", nil, false},
		{"no roles", &discordgo.Member{}, false},
		{"other role", &discordgo.Member{Roles: []string{"r1"}}, false},
		{"staff role", &discordgo.Member{Roles: []string{"r1", "r2"}}, true},
		{"unknown role id", &discordgo.Member{Roles: []string{"r9"}}, false},
		{"administrator", &discordgo.Member{Permissions: discordgo.PermissionAdministrator}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isStaff(tt.member, roles, "Staff"))
		})
	}

	assert.False(t, isStaff(&discordgo.Member{Roles: []string{"r2"}}, roles, "staff"), "role names match exactly")
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "member"}},
	}}
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm"},
	}}
	empty := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}

	assert.Equal(t, "member", interactionUserID(guild))
	assert.Equal(t, "dm", interactionUserID(dm))
	assert.Equal(t, "", interactionUserID(empty))
}

func TestBuildInvocation(t *testing.T) {
	inv := buildInvocation(booster.CmdGrant, "42", []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: booster.ArgUser, Type: discordgo.ApplicationCommandOptionString, Value: "<@123>"},
		{Name: booster.ArgCard, Type: discordgo.ApplicationCommandOptionString, Value: "Ember Fox"},
		{Name: "ignored", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
	})

	assert.Equal(t, booster.CmdGrant, inv.Kind)
	assert.Equal(t, "42", inv.UserID)
	assert.Equal(t, map[string]string{
		booster.ArgUser: "<@123>",
		booster.ArgCard: "Ember Fox",
	}, inv.Args)
	assert.False(t, inv.IsAuthorized)
}

func TestStaffCommands(t *testing.T) {
	for kind := range staffCommands {
		assert.Contains(t, string(kind), "pco-")
	}
	assert.False(t, staffCommands[booster.CmdOpen])
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5s", formatUptime(5*time.Second))
	assert.Equal(t, "2m 3s", formatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h 0m 0s", formatUptime(time.Hour))
	assert.Equal(t, "1d 2h 0m 0s", formatUptime(26*time.Hour))
}

func TestInfoEmbeds(t *testing.T) {
	about := aboutEmbed(time.Now().Add(-time.Minute), 42*time.Millisecond)
	assert.Equal(t, "Bot Information", about.Title)
	var ping string
	for _, f := range about.Fields {
		if f.Name == "Ping" {
			ping = f.Value
		}
	}
	assert.Equal(t, "42ms", ping)

	v := versionEmbed()
	assert.Contains(t, v.Description, "boosterbot v")
	assert.Equal(t, "`n/a`", code(""))
}
