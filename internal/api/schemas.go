package api

import (
	"time"

	"github.com/vidnotes/vidnotes-agent/internal/notes"
	"github.com/vidnotes/vidnotes-agent/internal/playback"
	"github.com/vidnotes/vidnotes-agent/internal/session"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type StatusResponse struct {
	State     string                `json:"state"`
	LastError string                `json:"last_error,omitempty"`
	VideoID   string                `json:"video_id,omitempty"`
	Video     *session.VideoDetails `json:"video,omitempty"`
	Playback  playback.Snapshot     `json:"playback"`
	NoteCount int                   `json:"note_count"`
}

type LoadVideoRequest struct {
	Ref string `json:"ref"`
}

type LoadVideoResponse struct {
	VideoID   string `json:"video_id"`
	Thumbnail string `json:"thumbnail"`
}

type AddNoteRequest struct {
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

type NoteResponse struct {
	ID            string  `json:"id"`
	Timestamp     float64 `json:"timestamp"`
	FormattedTime string  `json:"formatted_time"`
	Content       string  `json:"content"`
	Category      string  `json:"category"`
	CreatedAt     string  `json:"created_at"`
}

type NotesResponse struct {
	Notes []NoteResponse `json:"notes"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	InUse      []string `json:"in_use"`
}

type ExportRequest struct {
	OutputDir string `json:"output_dir,omitempty"`
}

type ExportResponse struct {
	Status     string `json:"status"`
	OutputPath string `json:"output_path"`
	NoteCount  int    `json:"note_count"`
}

type SeekRequest struct {
	Seconds *float64 `json:"seconds"`
}

type RateRequest struct {
	Rate float64 `json:"rate"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusToResponse folds the session status into a single user-facing state:
// idle without a video, error while the error slot is set, otherwise the
// player's status.
func StatusToResponse(st session.Status) StatusResponse {
	state := string(st.Playback.Status)
	switch {
	case st.Error != "":
		state = "error"
	case st.VideoID == "":
		state = "idle"
	}

	return StatusResponse{
		State:     state,
		LastError: st.Error,
		VideoID:   st.VideoID,
		Video:     st.Details,
		Playback:  st.Playback,
		NoteCount: st.NoteCount,
	}
}

func NoteToResponse(n notes.Note) NoteResponse {
	return NoteResponse{
		ID:            n.ID,
		Timestamp:     n.Timestamp,
		FormattedTime: n.FormattedTime,
		Content:       n.Content,
		Category:      n.Category,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}
