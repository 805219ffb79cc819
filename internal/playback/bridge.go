package playback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

const DefaultPollInterval = time.Second

// Status is the bridge lifecycle state.
type Status string

const (
	StatusUnattached Status = "unattached"
	StatusLoading    Status = "loading"
	StatusReady      Status = "ready"
	StatusPlaying    Status = "playing"
	StatusPaused     Status = "paused"
	StatusError      Status = "error"
)

var (
	ErrNotAttached = errors.New("no video player attached")
	ErrInvalidRate = errors.New("unsupported playback rate")
)

// PlaybackRates are the speeds offered to the user.
var PlaybackRates = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2}

func IsValidRate(rate float64) bool {
	for _, r := range PlaybackRates {
		if r == rate {
			return true
		}
	}
	return false
}

type VideoState struct {
	IsPlaying    bool    `json:"is_playing"`
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"`
	PlaybackRate float64 `json:"playback_rate"`
}

// Snapshot is a consistent copy of the bridge state.
type Snapshot struct {
	Status    Status     `json:"status"`
	State     VideoState `json:"state"`
	Title     string     `json:"title,omitempty"`
	LastPause float64    `json:"last_pause"`
	HasPaused bool       `json:"has_paused"`
}

type BridgeConfig struct {
	PollInterval time.Duration
	Logger       *slog.Logger

	// Callbacks run without the bridge lock held, so by the time one runs t
	// may already have been replaced. Receivers compare t with the transport
	// they attached.
	OnReady func(t Transport, title string, duration float64)
	OnPause func(seconds float64)
	OnError func(t Transport, err error)
}

// Bridge owns the transport handle and the playback state derived from it.
type Bridge struct {
	cfg    BridgeConfig
	logger *slog.Logger

	mu         sync.Mutex
	transport  Transport
	status     Status
	state      VideoState
	title      string
	lastPause  float64
	paused     bool
	poller     *poller
	pumpCancel context.CancelFunc
	pumpDone   chan struct{}
}

func NewBridge(cfg BridgeConfig) *Bridge {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bridge{
		cfg:    cfg,
		logger: logger,
		status: StatusUnattached,
		state:  VideoState{PlaybackRate: 1},
	}
}

// Attach takes ownership of t, replacing any previous transport, and starts
// consuming its events. Polling begins once the transport reports ready.
func (b *Bridge) Attach(ctx context.Context, t Transport) {
	b.Detach()

	pumpCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	b.mu.Lock()
	b.transport = t
	b.status = StatusLoading
	b.state = VideoState{PlaybackRate: 1}
	b.title = ""
	b.lastPause = 0
	b.paused = false
	b.pumpCancel = cancel
	b.pumpDone = done
	b.mu.Unlock()

	b.logger.Info("video player attached")
	go b.pump(pumpCtx, t, done)
}

// Detach stops polling, stops event consumption and closes the transport.
// It is safe to call from an event callback.
func (b *Bridge) Detach() {
	b.mu.Lock()
	t := b.transport
	p := b.poller
	cancel := b.pumpCancel
	b.transport = nil
	b.poller = nil
	b.pumpCancel = nil
	b.status = StatusUnattached
	b.mu.Unlock()

	p.Stop()
	if cancel != nil {
		cancel()
	}
	if t != nil {
		if err := t.Close(); err != nil {
			b.logger.Warn("failed to close video player", "error", err)
		}
		b.logger.Info("video player detached")
	}
}

// Done is closed when the event pump of the most recent Attach has exited.
func (b *Bridge) Done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pumpDone == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return b.pumpDone
}

func (b *Bridge) pump(ctx context.Context, t Transport, done chan struct{}) {
	defer close(done)

	events := t.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				b.transportGone(t)
				return
			}
			b.handle(t, ev)
		}
	}
}

// HandleEvent applies a transport event to the currently attached transport.
func (b *Bridge) HandleEvent(ev Event) {
	b.mu.Lock()
	t := b.transport
	b.mu.Unlock()
	if t == nil {
		return
	}
	b.handle(t, ev)
}

func (b *Bridge) handle(t Transport, ev Event) {
	switch ev.Type {
	case EventReady:
		b.mu.Lock()
		if b.transport != t {
			b.mu.Unlock()
			return
		}
		b.title = ev.Title
		if ev.Duration > 0 {
			b.state.Duration = ev.Duration
		}
		b.status = StatusReady
		if b.poller == nil {
			b.poller = newPoller(b.cfg.PollInterval, func() { b.sample(t) })
			b.poller.Start(context.Background())
		}
		title, duration := b.title, b.state.Duration
		b.mu.Unlock()

		b.logger.Info("video player ready", "title", title, "duration", duration)
		if b.cfg.OnReady != nil {
			b.cfg.OnReady(t, title, duration)
		}

	case EventPlay:
		b.sample(t)

	case EventPause:
		b.sample(t)

		b.mu.Lock()
		if b.transport != t {
			b.mu.Unlock()
			return
		}
		b.lastPause = b.state.CurrentTime
		b.paused = true
		at := b.lastPause
		b.mu.Unlock()

		if b.cfg.OnPause != nil {
			b.cfg.OnPause(at)
		}

	case EventError:
		b.mu.Lock()
		if b.transport != t {
			b.mu.Unlock()
			return
		}
		b.status = StatusError
		p := b.poller
		b.poller = nil
		b.mu.Unlock()

		p.Stop()
		err := &TransportError{Code: ev.Code}
		b.logger.Error("video player error", "code", ev.Code)
		if b.cfg.OnError != nil {
			b.cfg.OnError(t, err)
		}

	default:
		b.logger.Warn("unknown player event", "type", ev.Type)
	}
}

func (b *Bridge) transportGone(t Transport) {
	b.mu.Lock()
	if b.transport != t {
		b.mu.Unlock()
		return
	}
	p := b.poller
	b.poller = nil
	b.transport = nil
	b.status = StatusUnattached
	b.mu.Unlock()

	p.Stop()
	b.logger.Info("video player disconnected")
}

// sample reads the transport outside the lock and applies the result only if
// t is still the attached transport.
func (b *Bridge) sample(t Transport) {
	current := t.CurrentTime()
	duration := t.Duration()
	state := t.State()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.transport != t {
		return
	}

	if current < 0 {
		current = 0
	}
	if duration > 0 {
		b.state.Duration = duration
	}
	if b.state.Duration > 0 && current > b.state.Duration {
		current = b.state.Duration
	}

	b.state.CurrentTime = current
	b.state.IsPlaying = state == PlayerPlaying

	if b.status == StatusError || b.status == StatusLoading {
		return
	}
	switch state {
	case PlayerPlaying:
		b.status = StatusPlaying
	case PlayerPaused, PlayerEnded:
		b.status = StatusPaused
	}
}

// NoteTime is the position new notes are stamped with: the most recent
// sample, which is refreshed on every pause event and poll tick.
func (b *Bridge) NoteTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.CurrentTime
}

func (b *Bridge) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Status:    b.status,
		State:     b.state,
		Title:     b.title,
		LastPause: b.lastPause,
		HasPaused: b.paused,
	}
}

func (b *Bridge) attached() (Transport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.transport == nil {
		return nil, ErrNotAttached
	}
	return b.transport, nil
}

// SeekAndPlay moves the player to seconds and resumes playback.
func (b *Bridge) SeekAndPlay(seconds float64) error {
	t, err := b.attached()
	if err != nil {
		return err
	}
	if seconds < 0 {
		seconds = 0
	}
	if err := t.SeekTo(seconds); err != nil {
		return err
	}
	return t.Play()
}

func (b *Bridge) Seek(seconds float64) error {
	t, err := b.attached()
	if err != nil {
		return err
	}
	if seconds < 0 {
		seconds = 0
	}
	return t.SeekTo(seconds)
}

// TogglePlayPause pauses a playing video and plays a paused one, based on the
// last sampled state.
func (b *Bridge) TogglePlayPause() error {
	t, err := b.attached()
	if err != nil {
		return err
	}

	b.mu.Lock()
	playing := b.state.IsPlaying
	b.mu.Unlock()

	if playing {
		return t.Pause()
	}
	return t.Play()
}

func (b *Bridge) SetPlaybackRate(rate float64) error {
	if !IsValidRate(rate) {
		return ErrInvalidRate
	}
	t, err := b.attached()
	if err != nil {
		return err
	}
	if err := t.SetPlaybackRate(rate); err != nil {
		return err
	}

	b.mu.Lock()
	if b.transport == t {
		b.state.PlaybackRate = rate
	}
	b.mu.Unlock()
	return nil
}
