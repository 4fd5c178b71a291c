package logging

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultLoggerFactory hands out component loggers backed by one zap logger
type DefaultLoggerFactory struct {
	base       *zap.Logger
	repository LogRepository
	loggers    map[string]Logger
	mu         sync.Mutex
}

// FactoryOption customises a DefaultLoggerFactory
type FactoryOption func(*DefaultLoggerFactory)

// WithRepository persists Info/Warn/Error entries through repo
func WithRepository(repo LogRepository) FactoryOption {
	return func(f *DefaultLoggerFactory) {
		f.repository = repo
	}
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory(base *zap.Logger, opts ...FactoryOption) *DefaultLoggerFactory {
	if base == nil {
		base = zap.NewNop()
	}
	f := &DefaultLoggerFactory{
		base:    base,
		loggers: make(map[string]Logger),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	var logger Logger = NewZapLogger(f.base, component)
	if f.repository != nil {
		logger = NewDatabaseLogger(logger, component, f.repository)
	}
	f.loggers[component] = logger
	return logger
}

// CreateCommandLogger creates a logger for Discord command operations
func (f *DefaultLoggerFactory) CreateCommandLogger(commandName string) *CommandLogger {
	return NewCommandLogger(f.CreateLogger("commands"), commandName)
}

// CreateStoreLogger creates a logger for the player store
func (f *DefaultLoggerFactory) CreateStoreLogger(backend string) Logger {
	return NewStoreLogger(f.CreateLogger("store"), backend)
}

// Sync flushes the underlying zap logger
func (f *DefaultLoggerFactory) Sync() error {
	return f.base.Sync()
}

var (
	globalFactory LoggerFactory
	globalMu      sync.RWMutex
)

// GetGlobalLoggerFactory returns the process factory. Until one is set it
// returns a factory that writes nowhere.
func GetGlobalLoggerFactory() LoggerFactory {
	globalMu.RLock()
	f := globalFactory
	globalMu.RUnlock()
	if f != nil {
		return f
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalFactory == nil {
		globalFactory = NewLoggerFactory(zap.NewNop())
	}
	return globalFactory
}

// SetGlobalLoggerFactory sets the global logger factory
func SetGlobalLoggerFactory(factory LoggerFactory) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalFactory = factory
}
