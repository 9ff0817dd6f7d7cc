package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/belegflow/backend/internal/export"
	"github.com/belegflow/backend/internal/logger"
	"github.com/belegflow/backend/internal/processor"
	"github.com/belegflow/backend/internal/record"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// handleProcess accepts a multipart batch under the "files" field, runs the
// pipeline and answers with the session, records and totals.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		log.Warn().Err(err).Msg("multipart parse failed")
		s.writeError(w, http.StatusBadRequest, "cannot parse upload form")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		s.writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	docType := record.DocumentType(r.FormValue("document_type"))
	switch docType {
	case "", record.DocumentTypeReceipt, record.DocumentTypeBankStatement:
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown document type %q", docType))
		return
	}
	language := r.FormValue("language")

	var files []processor.File
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "cannot read uploaded file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "cannot read uploaded file "+fh.Filename)
			return
		}
		files = append(files, processor.File{
			Name: fh.Filename,
			MIME: fh.Header.Get("Content-Type"),
			Data: data,
		})
	}

	summary, err := s.processor.Process(r.Context(), files, docType, language)
	if err != nil {
		log.Error().Err(err).Msg("batch processing failed")
		s.writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// handleSession reports the per-file progress of a batch.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// handleExport streams the session's usable records as XLSX or CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	records := sess.Records()

	format := r.URL.Query().Get("format")
	switch format {
	case "csv":
		data, err := export.WriteCSV(records)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="buchhaltung.csv"`)
		w.Write(data)
	case "", "xlsx":
		data, err := export.WriteXLSX(records)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="buchhaltung.xlsx"`)
		w.Write(data)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown export format %q", format))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
