package presence

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpdater struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (f *fakeUpdater) UpdateGameStatus(_ int, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, name)
	return f.err
}

func (f *fakeUpdater) statuses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

func TestRotateWrapsAround(t *testing.T) {
	updater := &fakeUpdater{}
	p := NewPresenceManager(updater, []string{"a", "b", "c"}, "@every 10s", nil)

	for i := 0; i < 5; i++ {
		p.rotate()
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b"}, updater.statuses())
}

func TestRotateKeepsGoingOnError(t *testing.T) {
	updater := &fakeUpdater{err: errors.New("gateway closed")}
	p := NewPresenceManager(updater, []string{"a", "b"}, "@every 10s", nil)

	p.rotate()
	p.rotate()
	assert.Equal(t, []string{"a", "b"}, updater.statuses())
}

func TestStartShowsFirstStatus(t *testing.T) {
	updater := &fakeUpdater{}
	p := NewPresenceManager(updater, []string{"hello"}, "@every 1h", nil)

	require.NoError(t, p.Start())
	defer p.Stop()

	assert.Eventually(t, func() bool {
		return len(updater.statuses()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Error(t, p.Start(), "second start must fail")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	p := NewPresenceManager(&fakeUpdater{}, []string{"a"}, "not a schedule", nil)
	assert.Error(t, p.Start())
}

func TestStartWithoutStatusesIsNoop(t *testing.T) {
	updater := &fakeUpdater{}
	p := NewPresenceManager(updater, nil, "@every 1s", nil)
	require.NoError(t, p.Start())
	p.Stop()
	assert.Empty(t, updater.statuses())
}
