package booster

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb", joinLines([]string{"a", "b"}, 100))
	assert.Equal(t, "", joinLines(nil, 100))

	var lines []string
	for i := 0; i < 500; i++ {
		lines = append(lines, fmt.Sprintf("Card number %03d x1", i))
	}
	out := joinLines(lines, maxDescriptionLength)
	assert.LessOrEqual(t, len(out), maxDescriptionLength)
	assert.True(t, strings.HasSuffix(out, "more"))
	assert.True(t, strings.HasPrefix(out, "Card number 000 x1\n"))
}

func TestTargetUser(t *testing.T) {
	for _, raw := range []string{"42", " <@42> ", "<@!42>"} {
		id, ok := targetUser(Invocation{Args: map[string]string{ArgUser: raw}})
		assert.True(t, ok)
		assert.Equal(t, "42", id, raw)
	}
	_, ok := targetUser(Invocation{})
	assert.False(t, ok)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "exactly10!", clip("exactly10!", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
	assert.Equal(t, "éééé…", clip(strings.Repeat("é", 50), 5))

	msg := userMessage(&EngineError{Kind: NotOwned, Card: strings.Repeat("x", 5000)})
	assert.LessOrEqual(t, len([]rune(msg)), maxEchoLength+40)
}
