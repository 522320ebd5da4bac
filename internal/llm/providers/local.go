// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type Message struct {
	Role    string
	Content string
}

type Provider interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
	Name() string
}

// ChatOptions carries per-call sampling knobs. Zero values fall back to the
// provider defaults.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// LocalProvider answers with deterministic canned JSON so the pipeline can run
// without a credential. It picks the response by markers in the prompt.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	prompt := messages[len(messages)-1].Content
	switch {
	case strings.Contains(prompt, "MINIMUM 15 FAQs"):
		return localFAQs(), nil
	case strings.Contains(prompt, "EXACTLY 3"):
		return localSimilarProducts(), nil
	case strings.Contains(prompt, "comparison_summary"):
		return localAnalysis(), nil
	case strings.Contains(prompt, "title, description"):
		return localDescription(), nil
	case strings.Contains(prompt, "product_name"):
		return localParsed(), nil
	}
	return "[local-stub] " + strings.TrimSpace(prompt), nil
}

func (l *LocalProvider) Name() string {
	return "local"
}

func localParsed() string {
	return `{"product_name": "Local Sample Serum", "concentration": "2%", "skin_type": "All", "key_ingredients": "Hyaluronic Acid", "benefits": "Hydration", "how_to_use": "Apply daily", "side_effects": "None known", "price": "Rs 699"}`
}

func localDescription() string {
	return `{"title": "Local Sample Serum", "description": "A lightweight hydrating serum for daily use.", "highlights": ["Deep hydration", "Fragrance free", "Suits all skin types"], "usage_instructions": "Apply two drops on clean skin."}`
}

func localSimilarProducts() string {
	products := []map[string]interface{}{}
	for i := 1; i <= 3; i++ {
		products = append(products, map[string]interface{}{
			"brand":           fmt.Sprintf("Brand %d", i),
			"product_name":    fmt.Sprintf("Alternative Serum %d", i),
			"key_features":    "Hyaluronic Acid, Vitamin B5",
			"price":           fmt.Sprintf("Rs %d", 600+i*50),
			"rating":          4.0 + float64(i)*0.1,
			"rating_source":   "estimated",
			"differentiators": "Different texture and price point",
		})
	}
	encoded, _ := json.Marshal(products)
	return string(encoded)
}

func localAnalysis() string {
	return `{"comparison_summary": "The original product sits in the middle of the price band with a comparable ingredient list.", "feature_comparison": [{"feature": "Hyaluronic Acid", "verdict": "present in all"}], "price_analysis": {"position": "mid-range"}, "recommendations": {"general": "Pick by texture preference."}, "best_value_pick": {"brand": "Brand 1"}}`
}

func localFAQs() string {
	categories := []string{"Informational", "Safety", "Usage", "Purchase", "Comparison"}
	faqs := []map[string]string{}
	for i := 0; i < 15; i++ {
		faqs = append(faqs, map[string]string{
			"question": fmt.Sprintf("Sample question %d about the serum?", i+1),
			"answer":   "This is a canned answer used when no hosted model is configured. It spans a few sentences to resemble real output.",
			"category": categories[i%len(categories)],
		})
	}
	encoded, _ := json.Marshal(map[string]interface{}{"faqs": faqs})
	return string(encoded)
}
