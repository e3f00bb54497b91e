// =============================================================================
// Store Sales Analyzer - HTTP Viewer
// =============================================================================
//
// This module serves the interactive view of the pipeline: an upload form,
// the rendered aggregate tables, a JSON API and the workbook download.
//
// ROUTES:
//   GET  /                       : upload form
//   POST /analyze                : run the pipeline on the uploaded export
//   GET  /reports/{id}           : rendered aggregate tables
//   GET  /reports/{id}/download  : workbook artifact
//   GET  /api/reports/{id}       : aggregates as JSON
//
// Each upload is processed start-to-finish in its request. The finished
// report is parked in an in-process map under a random id so the follow-up
// page and download can find it; nothing is ever written to disk and the
// map dies with the process.
//
// =============================================================================

package webui

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/exporter"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/loader"
)

// maxUploadBytes bounds the multipart form kept in memory per upload.
const maxUploadBytes = 32 << 20

// Advisory is shown instead of the time-slot tables when the export has no
// usable sale timestamp column.
const Advisory = analyzer.Advisory

// =============================================================================
// SERVER STRUCTURE
// =============================================================================

// Server holds the viewer state.
type Server struct {
	cfg *config.Config

	mu      sync.Mutex
	reports map[string]*analyzer.Report
}

// New creates a viewer for the given configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:     cfg,
		reports: make(map[string]*analyzer.Report),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/reports/{id}", s.handleReport)
	r.Get("/reports/{id}/download", s.handleDownload)
	r.Get("/api/reports/{id}", s.handleAPIReport)

	return r
}

// =============================================================================
// HANDLERS
// =============================================================================

// handleIndex serves the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, "")
}

// handleAnalyze runs the pipeline on the uploaded export and redirects to
// the finished report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderIndex(w, http.StatusBadRequest, "アップロードを読み込めませんでした。")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, "ファイルが選択されていません。")
		return
	}
	defer file.Close()

	format, err := loader.DetectFormat(header.Filename)
	if err != nil {
		s.renderIndex(w, http.StatusBadRequest, fmt.Sprintf("対応していないファイル形式です: %v", err))
		return
	}

	tbl, err := loader.Load(file, format, s.cfg)
	if err != nil {
		slog.Warn("failed to load export",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		s.renderIndex(w, http.StatusUnprocessableEntity, fmt.Sprintf("ファイルを読み込めませんでした: %v", err))
		return
	}

	report := analyzer.Run(tbl, s.cfg)

	id := uuid.New().String()
	s.mu.Lock()
	s.reports[id] = report
	s.mu.Unlock()

	slog.Info("processed upload",
		slog.String("filename", header.Filename),
		slog.String("report_id", id),
		slog.Int("stores", len(report.Stores.Rows)),
		slog.Bool("has_time_slots", report.HasBuckets()))

	http.Redirect(w, r, "/reports/"+id, http.StatusSeeOther)
}

// handleReport renders the aggregate tables.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report := s.lookup(id)
	if report == nil {
		http.NotFound(w, r)
		return
	}

	view := reportView{
		ID:     id,
		Report: report,
	}
	if !report.HasBuckets() {
		view.Advisory = Advisory
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportTemplate.Execute(w, view); err != nil {
		slog.Error("failed to render report page", slog.String("error", err.Error()))
	}
}

// handleDownload streams the workbook artifact.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	report := s.lookup(chi.URLParam(r, "id"))
	if report == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"report.xlsx\"; filename*=UTF-8''%s",
			url.PathEscape(exporter.DownloadFilename)))

	if err := exporter.Write(report, w); err != nil {
		slog.Error("failed to stream workbook", slog.String("error", err.Error()))
	}
}

// handleAPIReport returns the aggregates as JSON.
func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	report := s.lookup(chi.URLParam(r, "id"))
	if report == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "report not found"})
		return
	}

	render.JSON(w, r, buildPayload(report))
}

// =============================================================================
// HELPERS
// =============================================================================

// lookup fetches a parked report by id.
func (s *Server) lookup(id string) *analyzer.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[id]
}

// renderIndex serves the upload form, optionally with an error banner.
func (s *Server) renderIndex(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, indexView{Error: errMsg}); err != nil {
		slog.Error("failed to render index page", slog.String("error", err.Error()))
	}
}
