// File path: internal/artifacts/artifacts_test.go
package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveInputStructured(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	path, err := store.SaveInput(map[string]interface{}{
		"product_name": "GlowBoost Vitamin C Serum",
		"price":        "Rs 699",
	})
	if err != nil {
		t.Fatalf("save input: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "input_GlowBoost_Vitamin_C_Serum_") || !strings.HasSuffix(base, ".json") {
		t.Fatalf("unexpected filename %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("parse artifact: %v", err)
	}
	if payload["product_data"] == nil || payload["timestamp"] == "" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestSaveInputFreeText(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	path, err := store.SaveInput("A hydrating serum with 2% hyaluronic acid.")
	if err != nil {
		t.Fatalf("save input: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "input_raw_input_") {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}
}

func TestSaveOutputNaming(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	longName := strings.Repeat("VeryLongProductName ", 4)
	path, err := store.SaveOutput(map[string]interface{}{"faqs": []string{}}, "faq", longName)
	if err != nil {
		t.Fatalf("save output: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "output_faq_") {
		t.Fatalf("unexpected filename %q", base)
	}
	// name portion capped at 30 characters
	parts := strings.Split(strings.TrimSuffix(base, ".json"), "_")
	if len(parts) < 4 {
		t.Fatalf("unexpected filename shape %q", base)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "Hydra Serum", want: "Hydra_Serum"},
		{in: "  ", want: "unknown"},
		{in: "Serum/2%!", want: "Serum_2__"},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
