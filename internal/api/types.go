// File path: internal/api/types.go
package api

import (
	"encoding/json"

	"github.com/nicodishanthj/Prodigen_phase1/internal/product"
)

type analyzeRequest struct {
	ProductData json.RawMessage `json:"product_data"`
	Operation   string          `json:"operation"`
	Operations  []string        `json:"operations"`
}

type analyzeResponse struct {
	ProductName string                 `json:"product_name"`
	Operations  []string               `json:"operations"`
	RunID       int64                  `json:"run_id,omitempty"`
	ParsedData  *product.ParsedProduct `json:"parsed_data,omitempty"`
	Description *product.Description   `json:"description,omitempty"`
	Comparison  *product.Comparison    `json:"comparison,omitempty"`
	FAQs        []product.FAQ          `json:"faqs,omitempty"`
}

type runsResponse struct {
	Runs []runSummary `json:"runs"`
}

type runSummary struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
	Operations  string `json:"operations"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	InputPath   string `json:"input_path,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	CreatedAt   string `json:"created_at"`
}

type runDetailResponse struct {
	Run   runSummary  `json:"run"`
	Audit []auditItem `json:"audit"`
}

type auditItem struct {
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}
