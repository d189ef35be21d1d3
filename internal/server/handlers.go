package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/tonhe/inkboard/internal/engine"
)

type healthResponse struct {
	Status     string `json:"status"`
	Dashboards int    `json:"dashboards"`
}

type dashboardInfo struct {
	Name        string    `json:"name"`
	State       string    `json:"state"`
	Interval    string    `json:"interval"`
	LastRender  time.Time `json:"last_render,omitzero"`
	RenderCount int       `json:"render_count"`
	ErrorCount  int       `json:"error_count"`
	FrameID     string    `json:"frame_id,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Dashboards: len(s.frames.ListEngines())})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	infos := s.frames.ListEngines()
	out := make([]dashboardInfo, 0, len(infos))
	for _, info := range infos {
		d := dashboardInfo{
			Name:        info.Name,
			State:       info.State.String(),
			Interval:    info.Interval.String(),
			LastRender:  info.LastRender,
			RenderCount: info.RenderCount,
			ErrorCount:  info.ErrorCount,
			FrameID:     info.FrameID,
		}
		if info.LastError != nil {
			d.LastError = info.LastError.Error()
		}
		out = append(out, d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) png(w http.ResponseWriter, r *http.Request) {
	s.serveFrame(w, r, "image/png", func(f *engine.Frame) []byte { return f.PNG })
}

func (s *Server) raw(w http.ResponseWriter, r *http.Request) {
	s.serveFrame(w, r, "application/octet-stream", func(f *engine.Frame) []byte { return f.Raw })
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.frames.Refresh(name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// serveFrame writes one encoding of the latest frame, answering 304 when
// the client already holds it.
func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request, contentType string, body func(*engine.Frame) []byte) {
	f, err := s.frames.Latest(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	etag := `"` + f.ID + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Render-ID", f.ID)
	w.Header().Set("Cache-Control", "no-cache")
	if !f.Rendered.IsZero() {
		w.Header().Set("Last-Modified", f.Rendered.UTC().Format(http.TimeFormat))
	}
	if match := r.Header.Get("If-None-Match"); match == etag || match == f.ID {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	b := body(f)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(b)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrNoFrame):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errTooFewSamples):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request_failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
