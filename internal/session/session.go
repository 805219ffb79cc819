// Package session owns the state scoped to the currently loaded video: its
// notes, its player bridge and the one user-visible error.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vidnotes/vidnotes-agent/internal/export"
	"github.com/vidnotes/vidnotes-agent/internal/logging"
	"github.com/vidnotes/vidnotes-agent/internal/notes"
	"github.com/vidnotes/vidnotes-agent/internal/playback"
	"github.com/vidnotes/vidnotes-agent/internal/videoref"
)

const placeholderDescription = "Loading description..."

var (
	ErrTransport       = errors.New("failed to load video")
	ErrNothingToExport = errors.New("no notes to export")
	ErrNoVideo         = errors.New("no video loaded")
	ErrNoteNotFound    = errors.New("note not found")
)

const (
	msgInvalidReference = "Please enter a valid YouTube URL or video ID"
	msgTransport        = "Failed to load video. Please check the URL and try again."
)

type VideoDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type Status struct {
	VideoID   string            `json:"video_id,omitempty"`
	Details   *VideoDetails     `json:"details,omitempty"`
	Playback  playback.Snapshot `json:"playback"`
	NoteCount int               `json:"note_count"`
	Error     string            `json:"error,omitempty"`
}

// Service is the session surface used by the HTTP API and the tray.
type Service interface {
	LoadVideo(ref string) (string, error)
	AttachTransport(ctx context.Context, t playback.Transport) error
	AddNote(content, category string) (notes.Note, bool, error)
	DeleteNote(id string) bool
	SeekToNote(id string) error
	Notes(search, category string) []notes.Note
	Categories() []string
	Export(dir string) (string, error)
	Status() Status
	ClearError()
	Bridge() *playback.Bridge
}

type Config struct {
	PollInterval time.Duration
	Logger       *slog.Logger

	// NewRenderer builds the document for each export. Defaults to a PDF.
	NewRenderer func() export.Renderer
}

type Session struct {
	logger      *slog.Logger
	bridge      *playback.Bridge
	newRenderer func() export.Renderer

	mu        sync.Mutex
	store     *notes.Store
	videoID   string
	details   *VideoDetails
	err       error
	transport playback.Transport
}

func New(cfg Config) *Session {
	s := &Session{
		logger:      cfg.Logger,
		newRenderer: cfg.NewRenderer,
		store:       notes.NewStore(),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newRenderer == nil {
		s.newRenderer = func() export.Renderer { return export.NewPDFRenderer() }
	}
	s.bridge = playback.NewBridge(playback.BridgeConfig{
		PollInterval: cfg.PollInterval,
		Logger:       logging.WithComponent(s.logger, "playback"),
		OnReady:      s.onReady,
		OnError:      s.onError,
	})
	return s
}

// LoadVideo switches the session to the video named by ref. On an invalid
// reference nothing but the error slot changes.
func (s *Session) LoadVideo(ref string) (string, error) {
	id, err := videoref.Parse(ref)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.switchVideo(id)
	s.err = nil

	logging.WithVideoID(s.logger, id).Info("video loaded")
	return id, nil
}

// switchVideo drops the attached player and all state of the previous video.
// Callers hold s.mu.
func (s *Session) switchVideo(id string) {
	s.bridge.Detach()
	s.transport = nil
	s.store.Reset()
	s.videoID = id
	s.details = nil
}

// AttachTransport hands the player for the current video to the bridge.
func (s *Session) AttachTransport(ctx context.Context, t playback.Transport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoID == "" {
		return ErrNoVideo
	}
	s.transport = t
	s.bridge.Attach(ctx, t)
	return nil
}

// onReady and onError ignore events from a player that was replaced after
// the bridge dispatched them.
func (s *Session) onReady(t playback.Transport, title string, _ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoID == "" || t != s.transport {
		return
	}
	s.details = &VideoDetails{
		Title:       title,
		Description: placeholderDescription,
		Thumbnail:   videoref.ThumbnailURL(s.videoID),
	}
}

// onError resets the session to the no-video state.
func (s *Session) onError(t playback.Transport, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.transport {
		s.logger.Debug("ignoring error from a replaced video player", "error", err)
		return
	}

	logging.WithVideoID(s.logger, s.videoID).Warn("video failed to load", "error", err)

	s.switchVideo("")
	s.err = fmt.Errorf("%w: %v", ErrTransport, err)
}

// AddNote stamps a note with the player's last sampled position. Empty
// content is ignored and reported as not added.
func (s *Session) AddNote(content, category string) (notes.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.videoID == "" {
		return notes.Note{}, false, ErrNoVideo
	}

	n, ok := s.store.Add(content, category, s.bridge.NoteTime())
	if ok {
		s.err = nil
	}
	return n, ok, nil
}

func (s *Session) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(id)
}

// SeekToNote moves the player to the note's timestamp and resumes playback.
func (s *Session) SeekToNote(id string) error {
	s.mu.Lock()
	n, ok := s.store.Get(id)
	s.mu.Unlock()

	if !ok {
		return ErrNoteNotFound
	}
	return s.bridge.SeekAndPlay(n.Timestamp)
}

func (s *Session) Notes(search, category string) []notes.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Filter(search, category)
}

func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Categories()
}

// Export writes the current notes to a document in dir and returns its path.
func (s *Session) Export(dir string) (string, error) {
	s.mu.Lock()
	doc := export.Document{
		VideoID: s.videoID,
		Notes:   s.store.Snapshot(),
	}
	if s.details != nil {
		doc.Title = s.details.Title
	}
	s.mu.Unlock()

	if len(doc.Notes) == 0 {
		return "", ErrNothingToExport
	}

	path, layout, err := export.Export(s.newRenderer(), doc, dir)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return "", err
	}

	s.logger.Info("notes exported", "path", logging.SanitizePath(path), "notes", len(doc.Notes), "pages", layout.Pages)
	return path, nil
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		VideoID:   s.videoID,
		Playback:  s.bridge.Snapshot(),
		NoteCount: s.store.Len(),
		Error:     userMessage(s.err),
	}
	if s.details != nil {
		d := *s.details
		st.Details = &d
	}
	return st
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// Bridge exposes the player controls for the current video.
func (s *Session) Bridge() *playback.Bridge {
	return s.bridge
}

// Close releases the attached player, if any.
func (s *Session) Close() {
	s.bridge.Detach()
}

func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, videoref.ErrInvalidReference):
		return msgInvalidReference
	case errors.Is(err, ErrTransport):
		return msgTransport
	default:
		return err.Error()
	}
}
