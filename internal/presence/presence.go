package presence

import (
	"errors"
	"sync"

	"github.com/latoulicious/boosterbot/pkg/logging"
	"github.com/robfig/cron/v3"
)

// StatusUpdater sets the bot's "Playing ..." line. *discordgo.Session
// satisfies it.
type StatusUpdater interface {
	UpdateGameStatus(idle int, name string) error
}

// PresenceManager cycles through a fixed list of statuses on a cron schedule
type PresenceManager struct {
	updater  StatusUpdater
	statuses []string
	schedule string
	logger   logging.Logger

	mu    sync.Mutex
	index int
	cron  *cron.Cron
}

// NewPresenceManager creates a manager; schedule is a standard cron spec or
// a descriptor such as "@every 10s".
func NewPresenceManager(updater StatusUpdater, statuses []string, schedule string, logger logging.Logger) *PresenceManager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PresenceManager{
		updater:  updater,
		statuses: append([]string(nil), statuses...),
		schedule: schedule,
		logger:   logger,
	}
}

// Start shows the first status right away and schedules the rotation
func (p *PresenceManager) Start() error {
	if len(p.statuses) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return errors.New("presence rotation already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(p.schedule, p.rotate); err != nil {
		return err
	}
	p.cron = c

	go p.rotate()
	c.Start()

	p.logger.Info("Presence rotation started", map[string]interface{}{
		"schedule": p.schedule,
		"statuses": len(p.statuses),
	})
	return nil
}

// Stop halts the rotation and waits for a running update to finish
func (p *PresenceManager) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// rotate shows the next status, wrapping around at the end of the list
func (p *PresenceManager) rotate() {
	p.mu.Lock()
	status := p.statuses[p.index]
	p.index = (p.index + 1) % len(p.statuses)
	p.mu.Unlock()

	if err := p.updater.UpdateGameStatus(0, status); err != nil {
		p.logger.Warn("Failed to update presence", map[string]interface{}{
			"status": status,
			"error":  err.Error(),
		})
	}
}
