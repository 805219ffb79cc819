package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vidnotes/vidnotes-agent/internal/notes"
	"github.com/vidnotes/vidnotes-agent/internal/playback"
	"github.com/vidnotes/vidnotes-agent/internal/session"
	"github.com/vidnotes/vidnotes-agent/internal/videoref"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSAllowlist())

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(LoopbackGuard())

		r.Get("/", playerPageHandler())
		r.Get("/player/ws", playerSocketHandler(cfg))

		r.Get("/status", statusHandler(cfg))
		r.Delete("/status/error", clearErrorHandler(cfg))
		r.Post("/video", loadVideoHandler(cfg))

		r.Get("/notes", listNotesHandler(cfg))
		r.Post("/notes", addNoteHandler(cfg))
		r.Delete("/notes/{id}", deleteNoteHandler(cfg))
		r.Post("/notes/{id}/seek", seekToNoteHandler(cfg))
		r.Get("/categories", categoriesHandler(cfg))

		r.Post("/export", exportHandler(cfg))

		r.Post("/playback/toggle", togglePlaybackHandler(cfg))
		r.Post("/playback/seek", seekHandler(cfg))
		r.Post("/playback/rate", rateHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: uptime,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, StatusToResponse(cfg.Session.Status()))
	}
}

func clearErrorHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Session.ClearError()
		w.WriteHeader(http.StatusNoContent)
	}
}

func loadVideoHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoadVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		id, err := cfg.Session.LoadVideo(req.Ref)
		if errors.Is(err, videoref.ErrInvalidReference) {
			WriteError(w, http.StatusBadRequest, cfg.Session.Status().Error, "INVALID_VIDEO")
			return
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, LoadVideoResponse{
			VideoID:   id,
			Thumbnail: videoref.ThumbnailURL(id),
		})
	}
}

func listNotesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		found := cfg.Session.Notes(q.Get("q"), q.Get("category"))

		resp := NotesResponse{Notes: make([]NoteResponse, len(found))}
		for i, n := range found {
			resp.Notes[i] = NoteToResponse(n)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func addNoteHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		n, added, err := cfg.Session.AddNote(req.Content, req.Category)
		if errors.Is(err, session.ErrNoVideo) {
			WriteError(w, http.StatusConflict, "load a video before adding notes", "NO_VIDEO")
			return
		}
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if !added {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		WriteJSON(w, http.StatusCreated, NoteToResponse(n))
	}
}

func deleteNoteHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Deleting a note that is already gone is a no-op.
		id := chi.URLParam(r, "id")
		if !cfg.Session.DeleteNote(id) {
			cfg.Logger.Debug("delete of unknown note", "note_id", id)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func seekToNoteHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := cfg.Session.SeekToNote(chi.URLParam(r, "id"))
		if errors.Is(err, session.ErrNoteNotFound) {
			WriteError(w, http.StatusNotFound, "note not found", "NOT_FOUND")
			return
		}
		if err != nil {
			writePlaybackError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func categoriesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, CategoriesResponse{
			Categories: notes.Categories,
			InUse:      cfg.Session.Categories(),
		})
	}
}

func togglePlaybackHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := cfg.Session.Bridge()
		if err := b.TogglePlayPause(); err != nil {
			writePlaybackError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, b.Snapshot())
	}
}

func seekHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Seconds == nil {
			WriteError(w, http.StatusBadRequest, "seconds is required", "BAD_REQUEST")
			return
		}

		b := cfg.Session.Bridge()
		if err := b.Seek(*req.Seconds); err != nil {
			writePlaybackError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, b.Snapshot())
	}
}

func rateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		b := cfg.Session.Bridge()
		if err := b.SetPlaybackRate(req.Rate); err != nil {
			writePlaybackError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, b.Snapshot())
	}
}

func writePlaybackError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playback.ErrNotAttached):
		WriteError(w, http.StatusConflict, err.Error(), "NOT_ATTACHED")
	case errors.Is(err, playback.ErrInvalidRate):
		WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	case errors.Is(err, playback.ErrTransportClosed):
		WriteError(w, http.StatusConflict, err.Error(), "NOT_ATTACHED")
	default:
		WriteError(w, http.StatusBadGateway, err.Error(), "PLAYER_ERROR")
	}
}
