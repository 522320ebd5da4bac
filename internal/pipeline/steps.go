// File path: internal/pipeline/steps.go
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
	"github.com/nicodishanthj/Prodigen_phase1/internal/llm"
	"github.com/nicodishanthj/Prodigen_phase1/internal/product"
)

// Steps holds the node implementations behind the pipeline graph.
type Steps struct {
	client *llm.Client
}

func NewSteps(client *llm.Client) *Steps {
	return &Steps{client: client}
}

// Parse turns the raw input into a validated ParsedProduct. Structured map
// input is validated directly; free text goes through the model.
func (s *Steps) Parse(ctx context.Context, state *State) *State {
	logger := common.Logger()
	logger.Info("pipeline: parse step executing")

	switch input := state.RawInput.(type) {
	case map[string]interface{}:
		parsed, err := product.ParsedFromMap(input)
		if err != nil {
			state.Err = err
			return state
		}
		state.Parsed = &parsed
	case string:
		if strings.TrimSpace(input) == "" {
			state.Err = &product.ValidationError{Field: "product_data", Reason: "empty input"}
			return state
		}
		var parsed product.ParsedProduct
		err := s.client.GenerateStructured(ctx, "parse", parsePrompt(input), parseFormat, llm.ChatOptions{}, &parsed)
		if err != nil {
			state.Err = err
			return state
		}
		state.Parsed = &parsed
	default:
		state.Err = &product.ValidationError{
			Field:  "product_data",
			Reason: fmt.Sprintf("unsupported input type %T", state.RawInput),
		}
		return state
	}
	logger.Info("pipeline: parsed product", "name", state.Parsed.ProductName)
	return state
}

// Description generates the marketing copy for the parsed product.
func (s *Steps) Description(ctx context.Context, state *State) *State {
	logger := common.Logger()
	logger.Info("pipeline: description step executing")

	productJSON, err := marshalIndent(state.Parsed)
	if err != nil {
		state.Err = err
		return state
	}
	var description product.Description
	err = s.client.GenerateStructured(ctx, "description", descriptionPrompt(productJSON), descriptionFormat, llm.ChatOptions{}, &description)
	if err != nil {
		state.Err = err
		return state
	}
	state.Description = &description
	logger.Info("pipeline: description generated", "title", description.Title)
	return state
}

// Comparison runs two model calls: find exactly three alternatives, then
// analyze the original against them.
func (s *Steps) Comparison(ctx context.Context, state *State) *State {
	logger := common.Logger()
	logger.Info("pipeline: comparison step executing")

	var similar product.SimilarProductList
	prompt := similarProductsPrompt(state.Parsed.ProductName, state.Parsed.KeyIngredients, state.Parsed.Price)
	err := s.client.GenerateStructured(ctx, "comparison.similar", prompt, similarProductsFormat, llm.ChatOptions{Temperature: 0.6}, &similar)
	if err != nil {
		state.Err = err
		return state
	}
	logger.Info("pipeline: similar products found", "count", len(similar))

	productJSON, err := marshalIndent(state.Parsed)
	if err != nil {
		state.Err = err
		return state
	}
	similarJSON, err := marshalIndent(similar)
	if err != nil {
		state.Err = err
		return state
	}
	var analysis product.ComparisonAnalysis
	err = s.client.GenerateStructured(ctx, "comparison.analysis",
		comparisonPrompt(productJSON, similarJSON), comparisonFormat,
		llm.ChatOptions{Temperature: 0.7, MaxTokens: 2048}, &analysis)
	if err != nil {
		state.Err = err
		return state
	}

	comparison := product.Comparison{
		ProductData: *state.Parsed,
		ComparisonBasis: map[string]interface{}{
			"primary_factors": []string{
				"Active ingredient type",
				"Ingredient concentration",
				"Skin type suitability",
				"Price",
			},
			"assumptions": []string{
				"Ratings are estimated",
				"Brand reputation inferred",
			},
		},
		SimilarProducts: similar,
		Analysis:        analysis,
	}
	if err := comparison.Validate(); err != nil {
		state.Err = err
		return state
	}
	state.Comparison = &comparison
	logger.Info("pipeline: comparison completed")
	return state
}

// FAQ generates the FAQ page. Short lists are rejected, never padded.
func (s *Steps) FAQ(ctx context.Context, state *State) *State {
	logger := common.Logger()
	logger.Info("pipeline: faq step executing")

	productJSON, err := marshalIndent(state.Parsed)
	if err != nil {
		state.Err = err
		return state
	}
	var page product.FAQPage
	err = s.client.GenerateStructured(ctx, "faq", faqPrompt(productJSON), faqFormat, llm.ChatOptions{MaxTokens: 4096}, &page)
	if err != nil {
		state.Err = err
		return state
	}
	state.FAQs = &page
	logger.Info("pipeline: faqs generated", "count", len(page.FAQs))
	return state
}

func marshalIndent(value interface{}) (string, error) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode product data: %w", err)
	}
	return string(encoded), nil
}
