package api

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vidnotes/vidnotes-agent/internal/playback"
)

//go:embed web/player.html
var playerPage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || isAllowedOrigin(origin)
	},
}

func playerPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(playerPage)
	}
}

// playerSocketHandler connects the browser-side player for the loaded video.
// The connection outlives the request, so the transport is attached with a
// background context and released by the session.
func playerSocketHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Session.Status().VideoID == "" {
			WriteError(w, http.StatusConflict, "no video loaded", "NO_VIDEO")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cfg.Logger.Warn("player websocket upgrade failed", "error", err)
			return
		}

		t := playback.NewWSTransport(conn, cfg.Logger.With("component", "player_ws"))
		if err := cfg.Session.AttachTransport(context.Background(), t); err != nil {
			cfg.Logger.Warn("player rejected", "error", err)
			t.Close()
		}
	}
}
