package session

import (
	"sync"
	"time"
)

// Timer drives Controller.Tick once per second while the session is active.
// At most one timer is alive per session: StartTimer stops any timer
// previously handed to it, and Stop is synchronous and idempotent so a
// cancelled timer never fires again.
type Timer struct {
	interval time.Duration
	stop     chan struct{}
	stopped  sync.Once
	wg       sync.WaitGroup
}

// StartTimer begins ticking the controller. If prev is non-nil it is stopped
// first, so starting a new session always cancels the previous clock.
func StartTimer(c *Controller, prev *Timer) *Timer {
	return startTimerInterval(c, prev, time.Second)
}

func startTimerInterval(c *Controller, prev *Timer, interval time.Duration) *Timer {
	if prev != nil {
		prev.Stop()
	}
	t := &Timer{
		interval: interval,
		stop:     make(chan struct{}),
	}
	t.wg.Add(1)
	go t.run(c)
	return t
}

func (t *Timer) run(c *Controller) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			c.Tick()
			if c.Status() != StatusActive {
				return
			}
		}
	}
}

// Stop cancels the timer and waits for the tick goroutine to exit.
func (t *Timer) Stop() {
	t.stopped.Do(func() { close(t.stop) })
	t.wg.Wait()
}
