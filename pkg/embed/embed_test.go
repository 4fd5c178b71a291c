package embed

import (
	"testing"
	"time"

	"github.com/latoulicious/boosterbot/pkg/booster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReply_Card(t *testing.T) {
	b := NewBoosterEmbedBuilder()
	b.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	embed := b.FromReply(booster.Reply{
		Title:       "🎉 You got a new card: Ember Fox",
		Description: "Rarity: Rare ✨",
		ImageRef:    "http://localhost:3000/images/ember.png",
		AccentColor: 0xFFD700,
	})

	assert.Equal(t, "🎉 You got a new card: Ember Fox", embed.Title)
	assert.Equal(t, 0xFFD700, embed.Color)
	assert.Equal(t, "2024-05-01T12:00:00Z", embed.Timestamp)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "http://localhost:3000/images/ember.png", embed.Image.URL)
}

func TestFromReply_ErrorAndFallbacks(t *testing.T) {
	b := CreateBoosterEmbeds()

	embed := b.FromReply(booster.Reply{Title: "Error", Description: "nope", IsError: true, AccentColor: 0xFFD700})
	assert.Equal(t, colorError, embed.Color)
	assert.Nil(t, embed.Image)

	embed = b.FromReply(booster.Reply{Title: "Your card collection", ImageRef: "ember.png"})
	assert.Equal(t, colorInfo, embed.Color)
	assert.Nil(t, embed.Image, "relative image paths are not attached")
}

func TestBasicEmbeds(t *testing.T) {
	b := CreateBasicEmbeds()
	assert.Equal(t, colorSuccess, b.Success("a", "b").Color)
	assert.Equal(t, colorWarning, b.Warning("a", "b").Color)
	assert.Equal(t, colorInfo, b.Info("a", "b").Color)
	assert.Equal(t, colorError, b.Error("a", "b").Color)
}
