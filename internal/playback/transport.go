// Package playback keeps a synchronous view of an external video player.
// The player is reached through the Transport interface; Bridge samples it,
// reacts to its events and sends seek/play/rate commands back.
package playback

import "fmt"

// PlayerState mirrors the YouTube iframe player state codes.
type PlayerState int

const (
	PlayerUnstarted PlayerState = -1
	PlayerEnded     PlayerState = 0
	PlayerPlaying   PlayerState = 1
	PlayerPaused    PlayerState = 2
	PlayerBuffering PlayerState = 3
	PlayerCued      PlayerState = 5
)

func (s PlayerState) String() string {
	switch s {
	case PlayerUnstarted:
		return "unstarted"
	case PlayerEnded:
		return "ended"
	case PlayerPlaying:
		return "playing"
	case PlayerPaused:
		return "paused"
	case PlayerBuffering:
		return "buffering"
	case PlayerCued:
		return "cued"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type EventType string

const (
	EventReady EventType = "ready"
	EventPlay  EventType = "play"
	EventPause EventType = "pause"
	EventError EventType = "error"
)

// Event is emitted by a Transport. Title and Duration are set for ready
// events, Code for error events.
type Event struct {
	Type     EventType
	Title    string
	Duration float64
	Code     int
}

// Transport is the capability set the bridge needs from a video player.
type Transport interface {
	CurrentTime() float64
	Duration() float64
	State() PlayerState
	SeekTo(seconds float64) error
	Play() error
	Pause() error
	SetPlaybackRate(rate float64) error
	// Events is closed when the transport goes away.
	Events() <-chan Event
	Close() error
}

// TransportError reports a player failure for the current video.
type TransportError struct {
	Code int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("video player error: code %d", e.Code)
}
