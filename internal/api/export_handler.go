package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vidnotes/vidnotes-agent/internal/export"
	"github.com/vidnotes/vidnotes-agent/internal/session"
)

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		outputDir := req.OutputDir
		if outputDir == "" {
			outputDir = cfg.ExportDir
		}

		count := cfg.Session.Status().NoteCount
		path, err := cfg.Session.Export(outputDir)
		switch {
		case errors.Is(err, session.ErrNothingToExport):
			WriteError(w, http.StatusConflict, "there are no notes to export", "NOTHING_TO_EXPORT")
			return
		case errors.Is(err, export.ErrInvalidOutputDir):
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		case err != nil:
			cfg.Logger.Error("export failed", "error", err, "output_dir", outputDir)
			WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ExportResponse{
			Status:     "ok",
			OutputPath: path,
			NoteCount:  count,
		})
	}
}
