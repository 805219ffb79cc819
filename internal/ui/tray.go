package ui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getlantern/systray"
	"github.com/vidnotes/vidnotes-agent/internal/playback"
	"github.com/vidnotes/vidnotes-agent/internal/session"
)

const refreshInterval = 2 * time.Second

type Tray struct {
	session   session.Service
	exportDir string
	playerURL string
	logger    *slog.Logger

	statusItem *systray.MenuItem
	videoItem  *systray.MenuItem
	notesItem  *systray.MenuItem
	playItem   *systray.MenuItem
	exportItem *systray.MenuItem

	mu   sync.Mutex
	done chan struct{}

	onQuit func()
}

type TrayConfig struct {
	Session   session.Service
	ExportDir string
	PlayerURL string
	Logger    *slog.Logger
	OnQuit    func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		session:   cfg.Session,
		exportDir: cfg.ExportDir,
		playerURL: cfg.PlayerURL,
		logger:    cfg.Logger,
		onQuit:    cfg.OnQuit,
		done:      make(chan struct{}),
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Video Notes")
	systray.SetTooltip("Video Notes Agent: " + t.playerURL)

	t.statusItem = systray.AddMenuItem("Status: Idle", "Current player status")
	t.statusItem.Disable()

	t.videoItem = systray.AddMenuItem("No video loaded", "Current video")
	t.videoItem.Disable()

	t.notesItem = systray.AddMenuItem("Notes: 0", "Notes for the current video")
	t.notesItem.Disable()

	systray.AddSeparator()

	t.playItem = systray.AddMenuItem("Play/Pause", "Toggle playback")
	t.exportItem = systray.AddMenuItem("Export PDF", "Export notes to "+t.exportDir)

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Video Notes Agent")

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.refresh()
			case <-t.playItem.ClickedCh:
				t.handleTogglePlayback()
			case <-t.exportItem.ClickedCh:
				t.handleExport()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			case <-t.done:
				return
			}
		}
	}()

	t.refresh()
	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) handleTogglePlayback() {
	if err := t.session.Bridge().TogglePlayPause(); err != nil {
		t.logger.Warn("toggle playback from tray failed", "error", err)
		return
	}
	t.refresh()
}

func (t *Tray) handleExport() {
	path, err := t.session.Export(t.exportDir)
	if err != nil {
		t.logger.Error("failed to export notes", "error", err)
		t.refresh()
		return
	}
	t.logger.Info("notes exported from tray", "path", path)
}

func (t *Tray) refresh() {
	lines := menuLines(t.session.Status())

	t.mu.Lock()
	defer t.mu.Unlock()

	t.statusItem.SetTitle(lines.status)
	t.videoItem.SetTitle(lines.video)
	t.notesItem.SetTitle(lines.notes)
	if lines.canExport {
		t.exportItem.Enable()
	} else {
		t.exportItem.Disable()
	}
	if lines.canPlay {
		t.playItem.Enable()
	} else {
		t.playItem.Disable()
	}
}

type trayLines struct {
	status    string
	video     string
	notes     string
	canExport bool
	canPlay   bool
}

const maxMenuTitle = 40

func menuLines(st session.Status) trayLines {
	lines := trayLines{
		status:    "Status: " + statusLabel(st),
		video:     "No video loaded",
		notes:     fmt.Sprintf("Notes: %d", st.NoteCount),
		canExport: st.NoteCount > 0,
	}

	switch st.Playback.Status {
	case playback.StatusReady, playback.StatusPlaying, playback.StatusPaused:
		lines.canPlay = true
	}

	if st.VideoID != "" {
		lines.video = "Video: " + st.VideoID
		if st.Details != nil && st.Details.Title != "" {
			lines.video = truncate(st.Details.Title, maxMenuTitle)
		}
	}
	return lines
}

func statusLabel(st session.Status) string {
	switch {
	case st.Error != "":
		return "Error"
	case st.VideoID == "":
		return "Idle"
	}

	switch st.Playback.Status {
	case playback.StatusUnattached:
		return "Waiting for player"
	case playback.StatusLoading:
		return "Loading"
	case playback.StatusReady:
		return "Ready"
	case playback.StatusPlaying:
		return "Playing"
	case playback.StatusPaused:
		return "Paused"
	default:
		return "Error"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func (t *Tray) Quit() {
	t.mu.Lock()
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	t.mu.Unlock()
	systray.Quit()
}
