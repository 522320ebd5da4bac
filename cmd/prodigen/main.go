// File path: cmd/prodigen/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nicodishanthj/Prodigen_phase1/internal/api"
	"github.com/nicodishanthj/Prodigen_phase1/internal/artifacts"
	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/config"
	"github.com/nicodishanthj/Prodigen_phase1/internal/llm"
	"github.com/nicodishanthj/Prodigen_phase1/internal/pipeline"
	"github.com/nicodishanthj/Prodigen_phase1/internal/sqlite"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("prodigen: .env file not loaded", "error", err)
	} else {
		logger.Info("prodigen: environment loaded from .env")
	}

	inputPath := flag.String("input", "", "path to input JSON file with product data (built-in sample when empty)")
	operations := flag.String("operations", "description,comparison,faq", "comma-separated operations: description,comparison,faq")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot analysis")
	addr := flag.String("addr", ":8081", "listen address for -serve")
	catalogPath := flag.String("catalog", defaultCatalogPath(), "path to the SQLite run catalog database")
	dataDir := flag.String("data-dir", "data", "directory for input/output artifacts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("prodigen: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("prodigen: config invalid", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}

	provider := llm.NewProvider(&cfg)
	logger.Info("prodigen: llm provider ready", "provider", provider.Name())
	client := llm.NewClient(provider, &cfg)

	runner, err := pipeline.NewRunner(client)
	if err != nil {
		logger.Error("prodigen: pipeline construction failed", "error", err)
		fmt.Println("pipeline error:", err)
		os.Exit(1)
	}

	artifactStore, err := artifacts.NewStore(*dataDir)
	if err != nil {
		logger.Error("prodigen: artifact store failed", "error", err)
		fmt.Println("artifact store error:", err)
		os.Exit(1)
	}

	catalog, err := sqlite.Open(*catalogPath)
	if err != nil {
		logger.Error("prodigen: catalog open failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer catalog.Close()

	if *serve {
		runServer(*addr, runner, catalog, artifactStore)
		return
	}

	if err := runOnce(ctx, runner, catalog, artifactStore, *inputPath, *operations); err != nil {
		fmt.Println("analysis error:", err)
		os.Exit(1)
	}
}

func runServer(addr string, runner *pipeline.Runner, catalog *sqlite.Store, artifactStore *artifacts.Store) {
	logger := common.Logger()
	server, err := api.NewServer(runner, catalog, artifactStore)
	if err != nil {
		logger.Error("prodigen: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}
	logger.Info("prodigen: server listening", "addr", addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		logger.Error("prodigen: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, runner *pipeline.Runner, catalog *sqlite.Store, artifactStore *artifacts.Store, inputPath, operationsFlag string) error {
	logger := common.Logger()

	input, err := loadInput(inputPath)
	if err != nil {
		return err
	}
	operations := pipeline.NormalizeOperations(strings.Split(operationsFlag, ","))
	if len(operations) == 0 {
		return fmt.Errorf("no valid operations specified, use: description, comparison, faq")
	}
	logger.Info("prodigen: starting analysis", "operations", operations)

	savedInput, err := artifactStore.SaveInput(input)
	if err != nil {
		logger.Warn("prodigen: input artifact not saved", "error", err)
	}

	started := time.Now()
	state, runErr := runner.Run(ctx, input, operations)
	duration := time.Since(started)

	productName := "unknown"
	if state != nil && state.Parsed != nil {
		productName = state.Parsed.ProductName
	}
	results := collectResults(state)

	outputPath := ""
	if runErr == nil {
		label := "all"
		if len(operations) < 3 {
			label = strings.Join(operations, "-")
		}
		if path, saveErr := artifactStore.SaveOutput(results, label, productName); saveErr != nil {
			logger.Warn("prodigen: output artifact not saved", "error", saveErr)
		} else {
			outputPath = path
		}
	}

	if id, recErr := catalog.RecordStart(ctx, productName, operations, savedInput); recErr != nil {
		logger.Warn("prodigen: run not recorded", "error", recErr)
	} else if finErr := catalog.RecordFinish(ctx, id, runErr, outputPath, duration.Milliseconds()); finErr != nil {
		logger.Warn("prodigen: run outcome not recorded", "error", finErr)
	}

	if runErr != nil {
		return runErr
	}
	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	fmt.Println(string(encoded))
	logger.Info("prodigen: analysis complete", "product", productName, "duration", duration)
	return nil
}

// loadInput reads the product payload from a JSON file, unwrapping saved input
// artifacts, or falls back to the built-in sample.
func loadInput(path string) (interface{}, error) {
	if strings.TrimSpace(path) == "" {
		common.Logger().Info("prodigen: using built-in sample product")
		return sampleProduct(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}
	if wrapped, ok := payload["product_data"]; ok {
		return wrapped, nil
	}
	return payload, nil
}

func collectResults(state *pipeline.State) map[string]interface{} {
	results := map[string]interface{}{}
	if state == nil {
		return results
	}
	if state.Parsed != nil {
		results["parsed_data"] = state.Parsed
	}
	if state.Description != nil {
		results["description"] = state.Description
	}
	if state.Comparison != nil {
		results["comparison"] = state.Comparison
	}
	if state.FAQs != nil {
		results["faqs"] = state.FAQs.FAQs
	}
	return results
}

func sampleProduct() map[string]interface{} {
	return map[string]interface{}{
		"product_name":    "GlowBoost Vitamin C Serum",
		"concentration":   "10% Vitamin C",
		"skin_type":       "Oily, Combination",
		"key_ingredients": "Vitamin C, Hyaluronic Acid",
		"benefits":        "Brightening, Fades dark spots",
		"how_to_use":      "Apply 2-3 drops in the morning before sunscreen",
		"side_effects":    "Mild tingling for sensitive skin",
		"price":           "Rs 699",
	}
}

func defaultCatalogPath() string {
	return filepath.Join("data", "catalog.db")
}
