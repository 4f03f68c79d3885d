package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"github.com/gyeh/claimstats/internal/claims"
	"github.com/gyeh/claimstats/internal/config"
	"github.com/gyeh/claimstats/internal/export"
	"github.com/gyeh/claimstats/internal/model"
	"github.com/gyeh/claimstats/internal/normalize"
	"github.com/gyeh/claimstats/internal/tabular"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "datasets": s.store.len()})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	if err := r.ParseMultipartForm(s.maxUpload()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	format, err := uploadFormat(r, header.Filename)
	if err != nil {
		writeError(w, r, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}
	id := normalize.BytesHash(data)

	// Identical bytes reuse the cleaned dataset only when read as the same
	// format; otherwise they are parsed again and replace the entry.
	stored, ok := s.store.get(id)
	if ok && stored.Dataset.Format == format {
		stored = &storedDataset{
			ID:         id,
			FileName:   filepath.Base(header.Filename),
			UploadedAt: time.Now(),
			Dataset:    stored.Dataset,
		}
		s.store.put(stored)
	} else {
		table, err := tabular.Read(bytes.NewReader(data), format)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log := s.log.With().Str("dataset_id", id).Str("request_id", requestIDFrom(r.Context())).Logger()
		ds, err := claims.Prepare(log, table, s.cfg.Headers())
		if err != nil {
			var se *tabular.SchemaError
			if errors.As(err, &se) {
				writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
					Error:     http.StatusText(http.StatusUnprocessableEntity),
					Message:   se.Error(),
					Missing:   se.Missing,
					RequestID: requestIDFrom(r.Context()),
				})
				return
			}
			writeError(w, r, http.StatusInternalServerError, claims.Describe(err))
			return
		}
		stored = &storedDataset{
			ID:         id,
			FileName:   filepath.Base(header.Filename),
			UploadedAt: time.Now(),
			Dataset:    ds,
		}
		s.store.put(stored)
	}

	rep := stored.Dataset.Report
	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:              stored.ID,
		FileName:        stored.FileName,
		Format:          string(stored.Dataset.Format),
		Rows:            rep.RowsKept,
		DroppedRows:     rep.RowsDropped,
		CoercedCells:    rep.CellsCoerced,
		MissingOptional: rep.MissingOptional,
		Years:           nonNil(stored.Dataset.Years),
		Payers:          nonNil(stored.Dataset.Payers),
	})
}

func uploadFormat(r *http.Request, filename string) (tabular.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return tabular.ParseFormat(f)
	}
	return tabular.DetectFormat(filename)
}

// view resolves the dataset and query filters shared by the read endpoints.
// It writes the error response itself and returns ok=false on failure.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (string, *claims.View, bool) {
	id := mux.Vars(r)["id"]
	stored, ok := s.store.get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("dataset %s not found; upload it first", id))
		return "", nil, false
	}

	// Absent query parameters fall back to the configured defaults.
	q := r.URL.Query()
	yearVals, payerVals := q["year"], q["payer"]
	if len(yearVals) == 0 {
		yearVals = s.cfg.Years
	}
	if len(payerVals) == 0 {
		payerVals = s.cfg.Payers
	}
	years, err := claims.ParseYearSelection(yearVals)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return "", nil, false
	}
	payers := claims.ParsePayerSelection(payerVals)

	return id, stored.Dataset.View(years, payers), true
}

func (s *Server) writeTable(w http.ResponseWriter, id string, v *claims.View, columns []string, rows [][]string) {
	resp := tableResponse{
		DatasetID: id,
		Years:     nonNil(v.Years),
		Payers:    nonNil(v.Payers),
		Columns:   columns,
		Rows:      nonNil(rows),
	}
	if v.Empty() {
		resp.Warning = claims.ErrEmptyResult.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaims(w http.ResponseWriter, r *http.Request) {
	id, v, ok := s.view(w, r)
	if !ok {
		return
	}
	rows := make([][]string, len(v.Records))
	for i := range v.Records {
		rows[i] = v.Records[i].Values()
	}
	s.writeTable(w, id, v, model.ClaimColumns(), rows)
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	id, v, ok := s.view(w, r)
	if !ok {
		return
	}
	rows := make([][]string, len(v.Monthly))
	for i := range v.Monthly {
		rows[i] = v.Monthly[i].Values()
	}
	s.writeTable(w, id, v, model.MonthlyPaidColumns(), rows)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, v, ok := s.view(w, r)
	if !ok {
		return
	}
	rows := make([][]string, len(v.Summary))
	for i := range v.Summary {
		rows[i] = v.Summary[i].Values()
	}
	s.writeTable(w, id, v, model.SummaryColumns(), rows)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.view(w, r)
	if !ok {
		return
	}
	written := false
	err := export.WithTempWorkbook(v, func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", config.DefaultReportName))
		written = true
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		if written {
			// Headers are already out; the client sees a truncated body.
			s.log.Warn().Err(err).Str("request_id", requestIDFrom(r.Context())).Msg("export hand-off failed")
			return
		}
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("export: %v", err))
	}
}
