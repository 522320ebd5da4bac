// File path: internal/api/analyze_handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/llm"
	"github.com/nicodishanthj/Prodigen_phase1/internal/pipeline"
	"github.com/nicodishanthj/Prodigen_phase1/internal/product"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if len(req.ProductData) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("product_data required"))
		return
	}
	input, err := decodeProductData(req.ProductData)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	operations := resolveOperations(req)
	if len(operations) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("operation required"))
		return
	}

	logger.Info("api: analyze request", "operations", operations)
	inputPath := ""
	if s.artifacts != nil {
		if path, saveErr := s.artifacts.SaveInput(input); saveErr != nil {
			logger.Warn("api: input artifact not saved", "error", saveErr)
		} else {
			inputPath = path
		}
	}

	started := time.Now()
	state, runErr := s.runner.Run(r.Context(), input, operations)
	duration := time.Since(started)

	productName := "unknown"
	if state != nil && state.Parsed != nil {
		productName = state.Parsed.ProductName
	}
	outputPath := ""
	if runErr == nil && s.artifacts != nil {
		label := operationLabel(operations)
		if path, saveErr := s.artifacts.SaveOutput(buildResponse(state, operations, 0), label, productName); saveErr != nil {
			logger.Warn("api: output artifact not saved", "error", saveErr)
		} else {
			outputPath = path
		}
	}
	runID := s.recordRun(r.Context(), productName, operations, inputPath, outputPath, runErr, duration)

	if runErr != nil {
		writeError(w, statusForError(runErr), runErr)
		return
	}

	response := buildResponse(state, operations, runID)
	writeJSON(w, http.StatusOK, response)
}

// decodeProductData accepts either a JSON object of product fields or a JSON
// string of free text. A string holding encoded JSON is unwrapped, matching
// the original request contract.
func decodeProductData(raw json.RawMessage) (interface{}, error) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode product_data: %w", err)
	}
	switch typed := value.(type) {
	case map[string]interface{}:
		return typed, nil
	case string:
		trimmed := strings.TrimSpace(typed)
		if strings.HasPrefix(trimmed, "{") {
			var nested map[string]interface{}
			if err := json.Unmarshal([]byte(trimmed), &nested); err == nil {
				return nested, nil
			}
		}
		return typed, nil
	default:
		return nil, fmt.Errorf("product_data must be an object or a string")
	}
}

func resolveOperations(req analyzeRequest) []string {
	if len(req.Operations) > 0 {
		return pipeline.NormalizeOperations(req.Operations)
	}
	operation := strings.ToLower(strings.TrimSpace(req.Operation))
	if operation == "all" {
		return []string{pipeline.OpDescription, pipeline.OpComparison, pipeline.OpFAQ}
	}
	if operation == "" {
		return nil
	}
	return pipeline.NormalizeOperations([]string{operation})
}

func statusForError(err error) int {
	var valErr *product.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusUnprocessableEntity
	}
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) recordRun(ctx context.Context, productName string, operations []string, inputPath, outputPath string, runErr error, duration time.Duration) int64 {
	if s.catalog == nil {
		return 0
	}
	logger := common.Logger()
	id, err := s.catalog.RecordStart(ctx, productName, operations, inputPath)
	if err != nil {
		logger.Warn("api: run not recorded", "error", err)
		return 0
	}
	if err := s.catalog.RecordFinish(ctx, id, runErr, outputPath, duration.Milliseconds()); err != nil {
		logger.Warn("api: run outcome not recorded", "error", err)
	}
	return id
}

func operationLabel(operations []string) string {
	if len(operations) >= 3 {
		return "all"
	}
	return strings.Join(operations, "-")
}

func buildResponse(state *pipeline.State, operations []string, runID int64) analyzeResponse {
	response := analyzeResponse{Operations: operations, RunID: runID}
	if state == nil {
		return response
	}
	if state.Parsed != nil {
		response.ProductName = state.Parsed.ProductName
		response.ParsedData = state.Parsed
	}
	response.Description = state.Description
	response.Comparison = state.Comparison
	if state.FAQs != nil {
		response.FAQs = state.FAQs.FAQs
	}
	return response
}
