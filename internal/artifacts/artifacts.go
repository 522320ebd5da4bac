// File path: internal/artifacts/artifacts.go
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
)

const timestampLayout = "20060102_150405"

// Store writes timestamped JSON copies of raw inputs and final results under
// <base>/inputs and <base>/outputs.
type Store struct {
	baseDir string
}

// NewStore prepares the artifact directories under baseDir.
func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "data"
	}
	for _, sub := range []string{"inputs", "outputs"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create artifact dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

// SaveInput writes the raw request payload before the pipeline runs.
func (s *Store) SaveInput(productData interface{}) (string, error) {
	name := "raw_input"
	if data, ok := productData.(map[string]interface{}); ok {
		if value, ok := data["product_name"].(string); ok && strings.TrimSpace(value) != "" {
			name = value
		} else {
			name = "unknown"
		}
	}
	timestamp := time.Now().Format(timestampLayout)
	filename := fmt.Sprintf("input_%s_%s.json", sanitizeName(name), timestamp)
	path := filepath.Join(s.baseDir, "inputs", filename)
	payload := map[string]interface{}{
		"timestamp":    timestamp,
		"product_data": productData,
	}
	if err := writeJSONFile(path, payload); err != nil {
		return "", err
	}
	common.Logger().Info("artifacts: input saved", "file", filename)
	return path, nil
}

// SaveOutput writes the final results after a successful run.
func (s *Store) SaveOutput(results interface{}, operation, productName string) (string, error) {
	timestamp := time.Now().Format(timestampLayout)
	filename := fmt.Sprintf("output_%s_%s_%s.json", operation, sanitizeName(productName), timestamp)
	path := filepath.Join(s.baseDir, "outputs", filename)
	payload := map[string]interface{}{
		"timestamp":    timestamp,
		"product_name": productName,
		"operation":    operation,
		"results":      results,
	}
	if err := writeJSONFile(path, payload); err != nil {
		return "", err
	}
	common.Logger().Info("artifacts: output saved", "file", filename)
	return path, nil
}

// sanitizeName makes a product name safe for filenames and caps its length.
func sanitizeName(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		cleaned = "unknown"
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	var builder strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}
	result := builder.String()
	if len(result) > 30 {
		result = result[:30]
	}
	return result
}

func writeJSONFile(path string, payload interface{}) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}
