package playback

import (
	"context"
	"time"
)

// poller invokes sample on a fixed interval until stopped.
type poller struct {
	interval time.Duration
	sample   func()
	cancel   context.CancelFunc
	done     chan struct{}
}

func newPoller(interval time.Duration, sample func()) *poller {
	return &poller{interval: interval, sample: sample}
}

func (p *poller) Start(ctx context.Context) {
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

func (p *poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sample()
		}
	}
}

// Stop cancels the loop and waits for it to exit. It must not be called
// from inside sample.
func (p *poller) Stop() {
	if p == nil || p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
}
