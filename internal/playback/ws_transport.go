package playback

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	eventBufferLen = 16
)

var ErrTransportClosed = errors.New("video player connection closed")

// wireMessage is the JSON frame exchanged with the browser player.
type wireMessage struct {
	Type        string   `json:"type"`
	Title       string   `json:"title,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	CurrentTime *float64 `json:"current_time,omitempty"`
	State       *int     `json:"state,omitempty"`
	Code        int      `json:"code,omitempty"`
	Seconds     *float64 `json:"seconds,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
}

const (
	msgReady = "ready"
	msgState = "state"
	msgPlay  = "play"
	msgPause = "pause"
	msgError = "error"
	msgSeek  = "seek"
	msgRate  = "rate"
)

// WSTransport is a Transport backed by a websocket to the browser-side
// player. The browser pushes state frames and events; commands are written
// back as JSON frames. Getters return the most recently pushed values.
type WSTransport struct {
	conn   *websocket.Conn
	logger *slog.Logger

	writeMu sync.Mutex

	mu       sync.RWMutex
	current  float64
	duration float64
	state    PlayerState

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewWSTransport starts reading from conn. The transport owns conn.
func NewWSTransport(conn *websocket.Conn, logger *slog.Logger) *WSTransport {
	t := &WSTransport{
		conn:   conn,
		logger: logger,
		state:  PlayerUnstarted,
		events: make(chan Event, eventBufferLen),
		done:   make(chan struct{}),
	}
	go t.readPump()
	return t
}

func (t *WSTransport) readPump() {
	defer close(t.events)
	defer t.Close()

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.logger.Warn("video player connection lost", "error", err)
			}
			return
		}

		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.logger.Warn("invalid player frame", "error", err)
			continue
		}

		t.apply(msg)

		var ev *Event
		switch msg.Type {
		case msgState:
		case msgReady:
			ev = &Event{Type: EventReady, Title: msg.Title}
			if msg.Duration != nil {
				ev.Duration = *msg.Duration
			}
		case msgPlay:
			ev = &Event{Type: EventPlay}
		case msgPause:
			ev = &Event{Type: EventPause}
		case msgError:
			ev = &Event{Type: EventError, Code: msg.Code}
		default:
			t.logger.Warn("unknown player frame", "type", msg.Type)
		}

		if ev != nil {
			select {
			case t.events <- *ev:
			case <-t.done:
				return
			}
		}
	}
}

// apply folds any state carried by msg into the cached values.
func (t *WSTransport) apply(msg wireMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if msg.CurrentTime != nil {
		t.current = *msg.CurrentTime
	}
	if msg.Duration != nil {
		t.duration = *msg.Duration
	}
	if msg.State != nil {
		t.state = PlayerState(*msg.State)
	}
	switch msg.Type {
	case msgPlay:
		if msg.State == nil {
			t.state = PlayerPlaying
		}
	case msgPause:
		if msg.State == nil {
			t.state = PlayerPaused
		}
	}
}

func (t *WSTransport) CurrentTime() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

func (t *WSTransport) Duration() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.duration
}

func (t *WSTransport) State() PlayerState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *WSTransport) SeekTo(seconds float64) error {
	return t.send(wireMessage{Type: msgSeek, Seconds: &seconds})
}

func (t *WSTransport) Play() error {
	return t.send(wireMessage{Type: msgPlay})
}

func (t *WSTransport) Pause() error {
	return t.send(wireMessage{Type: msgPause})
}

func (t *WSTransport) SetPlaybackRate(rate float64) error {
	return t.send(wireMessage{Type: msgRate, Rate: &rate})
}

func (t *WSTransport) Events() <-chan Event {
	return t.events
}

func (t *WSTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)

		t.writeMu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		t.writeMu.Unlock()

		err = t.conn.Close()
	})
	return err
}

func (t *WSTransport) send(msg wireMessage) error {
	select {
	case <-t.done:
		return ErrTransportClosed
	default:
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, data)
}
