package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/cache"
	"github.com/jonathan/vendor-insights/internal/export"
	"go.uber.org/zap"
)

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "export.xlsx", export.ContentTypeXLSX, export.WriteXLSX)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "export.csv", export.ContentTypeCSV, export.WriteCSV)
}

// serveExport renders the full report for the request's filters as a download. Rendered
// files are cached like any other view.
func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, name, contentType string,
	write func(io.Writer, *analytics.Report) error) {
	fs, err := parseFilters(r.URL.Query())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	body, hit, err := s.views.Load(r.Context(), cache.ViewKey(name, canonicalQuery(fs, nil)), func() ([]byte, error) {
		defer s.metrics.observeView(name, time.Now())
		report := analytics.BuildReport(s.dataset, fs)
		var buf bytes.Buffer
		if err := write(&buf, &report); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		s.logger.Error("export failed", zap.String("format", name), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(name, fs.Period)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}

// exportFilename turns "export.xlsx" into "vendor-insights-30d.xlsx".
func exportFilename(name string, period analytics.Period) string {
	ext := name[len("export"):]
	return fmt.Sprintf("vendor-insights-%s%s", period, ext)
}
