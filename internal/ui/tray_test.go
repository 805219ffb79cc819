package ui

import (
	"testing"

	"github.com/vidnotes/vidnotes-agent/internal/playback"
	"github.com/vidnotes/vidnotes-agent/internal/session"
)

func TestMenuLines(t *testing.T) {
	tests := []struct {
		name       string
		st         session.Status
		wantStatus string
		wantVideo  string
		wantNotes  string
		wantExport bool
		wantPlay   bool
	}{
		{
			name:       "idle",
			st:         session.Status{Playback: playback.Snapshot{Status: playback.StatusUnattached}},
			wantStatus: "Status: Idle",
			wantVideo:  "No video loaded",
			wantNotes:  "Notes: 0",
		},
		{
			name:       "waiting for player",
			st:         session.Status{VideoID: "dQw4w9WgXcQ", Playback: playback.Snapshot{Status: playback.StatusUnattached}},
			wantStatus: "Status: Waiting for player",
			wantVideo:  "Video: dQw4w9WgXcQ",
			wantNotes:  "Notes: 0",
		},
		{
			name: "paused with notes",
			st: session.Status{
				VideoID:   "dQw4w9WgXcQ",
				Details:   &session.VideoDetails{Title: "Never Gonna Give You Up"},
				Playback:  playback.Snapshot{Status: playback.StatusPaused},
				NoteCount: 3,
			},
			wantStatus: "Status: Paused",
			wantVideo:  "Never Gonna Give You Up",
			wantNotes:  "Notes: 3",
			wantExport: true,
			wantPlay:   true,
		},
		{
			name:       "error",
			st:         session.Status{Error: "Failed to load video. Please check the URL and try again."},
			wantStatus: "Status: Error",
			wantVideo:  "No video loaded",
			wantNotes:  "Notes: 0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := menuLines(tc.st)
			if got.status != tc.wantStatus {
				t.Errorf("status = %q, want %q", got.status, tc.wantStatus)
			}
			if got.video != tc.wantVideo {
				t.Errorf("video = %q, want %q", got.video, tc.wantVideo)
			}
			if got.notes != tc.wantNotes {
				t.Errorf("notes = %q, want %q", got.notes, tc.wantNotes)
			}
			if got.canExport != tc.wantExport {
				t.Errorf("canExport = %v, want %v", got.canExport, tc.wantExport)
			}
			if got.canPlay != tc.wantPlay {
				t.Errorf("canPlay = %v, want %v", got.canPlay, tc.wantPlay)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
	if got := truncate("a much longer video title", 10); got != "a much ..." {
		t.Errorf("truncate() = %q, want %q", got, "a much ...")
	}
}

func TestIconBytesIsPNG(t *testing.T) {
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if len(iconBytes) < len(sig) {
		t.Fatalf("icon too short: %d bytes", len(iconBytes))
	}
	for i, b := range sig {
		if iconBytes[i] != b {
			t.Fatalf("icon byte %d = %#x, want %#x", i, iconBytes[i], b)
		}
	}
}
