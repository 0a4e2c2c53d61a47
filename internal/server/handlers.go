package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/solardome/preclear-demo/internal/report"
	"github.com/solardome/preclear-demo/internal/store"
)

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.writeHTML(w, http.StatusOK, s.renderer.Home)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		s.log.Warn("upload rate limited", zap.String("remote", req.RemoteAddr))
		http.Error(w, "too many uploads, try again shortly", http.StatusTooManyRequests)
		return
	}

	if req.ContentLength > s.cfg.MaxUploadBytes {
		http.Error(w, "upload exceeds size limit", http.StatusRequestEntityTooLarge)
		return
	}
	req.Body = http.MaxBytesReader(w, req.Body, s.cfg.MaxUploadBytes)
	filename, content, err := readUpload(req)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload exceeds size limit", http.StatusRequestEntityTooLarge)
			return
		}
		s.log.Info("rejected upload", zap.Error(err))
		http.Error(w, "a file upload in field \"file\" is required", http.StatusBadRequest)
		return
	}

	rep := s.generator.Analyze(filename, content)
	s.store.Put(rep)
	s.logStored(rep)
	s.writeHTML(w, http.StatusOK, func(w io.Writer) error { return s.renderer.Report(w, rep) })
}

func readUpload(req *http.Request) (string, []byte, error) {
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		return "", nil, errors.Wrap(err, "parse multipart form")
	}
	f, header, err := req.FormFile("file")
	if err != nil {
		return "", nil, errors.Wrap(err, "read form file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, errors.Wrap(err, "read upload")
	}
	return header.Filename, content, nil
}

func (s *Server) handleReport(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	rep, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeHTML(w, http.StatusNotFound, func(w io.Writer) error { return s.renderer.NotFound(w, id) })
			return
		}
		s.serverError(w, err)
		return
	}
	s.writeHTML(w, http.StatusOK, func(w io.Writer) error { return s.renderer.Report(w, rep) })
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	reports := s.store.List()
	s.writeHTML(w, http.StatusOK, func(w io.Writer) error { return s.renderer.History(w, reports) })
}

func (s *Server) handleSimulate(w http.ResponseWriter, _ *http.Request) {
	s.writeHTML(w, http.StatusOK, s.renderer.Simulate)
}

func (s *Server) handleDemo(w http.ResponseWriter, _ *http.Request) {
	s.writeHTML(w, http.StatusOK, s.renderer.Demo)
}

func (s *Server) handleDemoReport(w http.ResponseWriter, _ *http.Request) {
	rep := s.generator.DemoReport()
	s.store.Put(rep)
	s.logStored(rep)
	s.writeHTML(w, http.StatusOK, func(w io.Writer) error { return s.renderer.Report(w, rep) })
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"reports":     s.store.Len(),
		"max_reports": s.store.Capacity(),
	})
}

func (s *Server) handleAPIList(w http.ResponseWriter, _ *http.Request) {
	reports := s.store.List()
	out := make([]report.Summary, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.Summary())
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"max_reports": s.store.Capacity(),
		"reports":     out,
	})
}

func (s *Server) handleAPIGet(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	rep, err := s.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found or expired", "report_id": id})
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) logStored(rep report.Report) {
	s.log.Info("report stored",
		zap.String("report_id", rep.ID),
		zap.String("source", rep.Source),
		zap.String("filename", rep.Filename),
		zap.Int("size_bytes", rep.SizeBytes),
		zap.Int("final_risk", rep.FinalRisk),
		zap.String("verdict", rep.Verdict),
		zap.Int("stored", s.store.Len()),
	)
}

// writeHTML renders into a buffer first so a render failure still yields a
// clean 500 instead of a half-written page.
func (s *Server) writeHTML(w http.ResponseWriter, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := report.EncodeJSON(&buf, v); err != nil {
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
