package logging

import (
	"time"
)

// DatabaseLogger wraps a base logger and also persists every entry through a
// LogRepository. Persistence runs in the background and never blocks the
// caller; failures are reported on the base logger only.
type DatabaseLogger struct {
	base       Logger
	component  string
	context    map[string]interface{}
	repository LogRepository
}

// NewDatabaseLogger creates a new database-backed logger
func NewDatabaseLogger(base Logger, component string, repository LogRepository) *DatabaseLogger {
	return &DatabaseLogger{
		base:       base,
		component:  component,
		context:    make(map[string]interface{}),
		repository: repository,
	}
}

// Info logs informational messages and persists to database
func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
	d.persist("INFO", msg, nil, fields)
}

// Error logs error messages and persists to database
func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persist("ERROR", msg, err, fields)
}

// Warn logs warning messages and persists to database
func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persist("WARN", msg, nil, fields)
}

// Debug logs debug messages; they are not persisted
func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
}

// WithScope creates a new logger with a scope field
func (d *DatabaseLogger) WithScope(scope string) Logger {
	return d.WithContext(map[string]interface{}{"scope": scope})
}

// WithContext creates a new logger with additional context fields
func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	return &DatabaseLogger{
		base:       d.base.WithContext(ctx),
		component:  d.component,
		context:    mergeFields(d.context, ctx),
		repository: d.repository,
	}
}

func (d *DatabaseLogger) persist(level, message string, err error, fields map[string]interface{}) {
	if d.repository == nil {
		return
	}
	entry := d.buildLogEntry(level, message, err, fields)

	go func() {
		if saveErr := d.repository.SaveLog(entry); saveErr != nil {
			d.base.Error("Failed to persist log to database", saveErr, map[string]interface{}{
				"original_message": message,
				"original_level":   level,
			})
		}
	}()
}

func (d *DatabaseLogger) buildLogEntry(level, message string, err error, fields map[string]interface{}) LogEntry {
	all := mergeFields(d.context, fields)
	all["timestamp"] = time.Now().UTC()

	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   message,
		Fields:    all,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if v, ok := all["guild_id"].(string); ok {
		entry.GuildID = v
	}
	if v, ok := all["user_id"].(string); ok {
		entry.UserID = v
	}
	if v, ok := all["channel_id"].(string); ok {
		entry.ChannelID = v
	}
	return entry
}
