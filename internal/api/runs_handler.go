// File path: internal/api/runs_handler.go
package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/sqlite"
)

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("run catalog not configured"))
		return
	}
	if idParam := strings.TrimSpace(r.URL.Query().Get("id")); idParam != "" {
		s.handleRunDetail(w, r, idParam)
		return
	}
	limit := 0
	if limitParam := strings.TrimSpace(r.URL.Query().Get("limit")); limitParam != "" {
		value, err := strconv.Atoi(limitParam)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = value
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	var (
		runs []sqlite.Run
		err  error
	)
	if status != "" {
		runs, err = s.catalog.RunsByStatus(r.Context(), status, limit)
	} else {
		runs, err = s.catalog.ListRuns(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	response := runsResponse{Runs: make([]runSummary, 0, len(runs))}
	for _, run := range runs {
		response.Runs = append(response.Runs, summarizeRun(run))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleRunDetail(w http.ResponseWriter, r *http.Request, idParam string) {
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid run id"))
		return
	}
	run, err := s.catalog.RunByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, errors.New("run not found"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	audit, err := s.catalog.AuditForRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	detail := runDetailResponse{Run: summarizeRun(*run)}
	for _, row := range audit {
		detail.Audit = append(detail.Audit, auditItem{
			Action:    row.Action,
			Detail:    row.Detail,
			CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, detail)
}

func summarizeRun(run sqlite.Run) runSummary {
	return runSummary{
		ID:          run.ID,
		ProductName: run.ProductName,
		Operations:  run.Operations,
		Status:      run.Status,
		Error:       run.Error,
		InputPath:   run.InputPath,
		OutputPath:  run.OutputPath,
		DurationMS:  run.DurationMS,
		CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
