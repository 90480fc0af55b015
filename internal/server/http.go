package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/render"
	"github.com/muurk/edtable/internal/table"
	"github.com/muurk/edtable/internal/version"
	"go.uber.org/zap"
)

// handleIndex serves the page with the table as mounted. Live state arrives
// over the websocket once the page connects.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctrl := table.New(nil, s.config.Args.Options(render.FrameHeight))

	var buf bytes.Buffer
	err := render.Page(&buf, render.PageData{
		Title: s.config.Title,
		View:  ctrl.View(),
		Theme: s.config.Args.Theme,
	})
	if err != nil {
		logging.Error("Failed to render page",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// HealthStatus is the body of /healthz.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(HealthStatus{
		Status:   "ok",
		Version:  version.Full(),
		Sessions: s.GetActiveSessions(),
	})
}

// logRequests logs every request. The ResponseWriter is passed through
// untouched so websocket upgrades can hijack it.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)
		if r.TLS != nil {
			logging.LogTLSHandshake(r.RemoteAddr, r.TLS.Version, r.TLS.ServerName)
		}
		logging.Debug("HTTP request details",
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("host", r.Host),
			zap.String("origin", r.Header.Get("Origin")),
			zap.String("user_agent", r.Header.Get("User-Agent")),
		)
		next.ServeHTTP(w, r)
	})
}
