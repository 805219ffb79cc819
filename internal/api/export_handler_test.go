package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newExportRequest(t *testing.T, req ExportRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/export", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq
}

func TestExport_HappyPath(t *testing.T) {
	cfg, sess := testServerConfig(t)
	attachPlayer(t, sess, 5)
	sess.AddNote("first point", "General")
	sess.AddNote("second point", "Summary")

	outDir := t.TempDir()
	rr := httptest.NewRecorder()
	exportHandler(cfg).ServeHTTP(rr, newExportRequest(t, ExportRequest{OutputDir: outDir}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp ExportResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	if resp.NoteCount != 2 {
		t.Fatalf("note_count = %d, want 2", resp.NoteCount)
	}
	if want := filepath.Join(outDir, "Test Talk-notes.pdf"); resp.OutputPath != want {
		t.Fatalf("output_path = %s, want %s", resp.OutputPath, want)
	}

	content, err := os.ReadFile(resp.OutputPath)
	if err != nil {
		t.Fatalf("failed reading output PDF: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Fatal("written file is not a PDF")
	}
}

func TestExport_DefaultDir(t *testing.T) {
	cfg, sess := testServerConfig(t)
	attachPlayer(t, sess, 5)
	sess.AddNote("note", "")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/export", nil)
	exportHandler(cfg).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := decodeJSONBody(t, rr)
	if path, _ := body["output_path"].(string); !strings.HasPrefix(path, cfg.ExportDir) {
		t.Fatalf("output_path = %v, want inside %s", body["output_path"], cfg.ExportDir)
	}
}

func TestExport_NothingToExport(t *testing.T) {
	cfg, sess := testServerConfig(t)
	attachPlayer(t, sess, 5)

	rr := httptest.NewRecorder()
	exportHandler(cfg).ServeHTTP(rr, newExportRequest(t, ExportRequest{OutputDir: t.TempDir()}))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if body := decodeJSONBody(t, rr); body["code"] != "NOTHING_TO_EXPORT" {
		t.Fatalf("code = %v, want NOTHING_TO_EXPORT", body["code"])
	}
}

func TestExport_InvalidOutputDir(t *testing.T) {
	cfg, sess := testServerConfig(t)
	attachPlayer(t, sess, 5)
	sess.AddNote("note", "")

	for _, dir := range []string{filepath.Join(t.TempDir(), "missing"), "/tmp/../etc"} {
		rr := httptest.NewRecorder()
		exportHandler(cfg).ServeHTTP(rr, newExportRequest(t, ExportRequest{OutputDir: dir}))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status for %s = %d, want %d", dir, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestExport_InvalidBody(t *testing.T) {
	cfg, _ := testServerConfig(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader("{not json"))
	exportHandler(cfg).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExportRoute_PreflightAllowsPost(t *testing.T) {
	cfg, _ := testServerConfig(t)
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodOptions, "/export", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	allowMethods := rr.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(allowMethods, "POST") {
		t.Fatalf("Access-Control-Allow-Methods = %q, want to include POST", allowMethods)
	}
}
