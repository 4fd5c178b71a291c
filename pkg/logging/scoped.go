package logging

// CommandLogger is a logger for one slash command
type CommandLogger struct {
	Logger
	commandName string
}

// NewCommandLogger creates a new command logger
func NewCommandLogger(base Logger, commandName string) *CommandLogger {
	return &CommandLogger{
		Logger: base.WithContext(map[string]interface{}{
			"command": commandName,
		}),
		commandName: commandName,
	}
}

// Name returns the command this logger is bound to
func (c *CommandLogger) Name() string {
	return c.commandName
}

// WithInteraction adds Discord interaction context to the command logger
func (c *CommandLogger) WithInteraction(guildID, userID, channelID string) Logger {
	return c.WithContext(map[string]interface{}{
		"guild_id":   guildID,
		"user_id":    userID,
		"channel_id": channelID,
	})
}

// NewStoreLogger tags a logger with the storage backend in use
func NewStoreLogger(base Logger, backend string) Logger {
	return base.WithContext(map[string]interface{}{
		"backend": backend,
	})
}
