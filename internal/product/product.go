// File path: internal/product/product.go
package product

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MinFAQs is the smallest acceptable FAQ list. Shorter lists are rejected,
// never padded.
const MinFAQs = 15

// SimilarProductCount is the required number of alternatives in a comparison.
const SimilarProductCount = 3

// Categories enumerates the allowed FAQ categories.
var Categories = []string{"Informational", "Safety", "Usage", "Purchase", "Comparison"}

// ValidationError reports output that does not satisfy the schema. It is never
// retried; the generating call has already succeeded at the transport level.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("product validation: %s: %s", e.Field, e.Reason)
}

// ParsedProduct is the structured form of the raw product input.
type ParsedProduct struct {
	ProductName    string `json:"product_name"`
	Concentration  string `json:"concentration,omitempty"`
	SkinType       string `json:"skin_type,omitempty"`
	KeyIngredients string `json:"key_ingredients,omitempty"`
	Benefits       string `json:"benefits,omitempty"`
	HowToUse       string `json:"how_to_use,omitempty"`
	SideEffects    string `json:"side_effects,omitempty"`
	Price          string `json:"price,omitempty"`
	PriceInINR     string `json:"price_in_inr,omitempty"`
}

func (p *ParsedProduct) Validate() error {
	if strings.TrimSpace(p.ProductName) == "" {
		return &ValidationError{Field: "product_name", Reason: "required"}
	}
	return nil
}

// ParsedFromMap converts an already-structured input map into a ParsedProduct.
func ParsedFromMap(data map[string]interface{}) (ParsedProduct, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return ParsedProduct{}, &ValidationError{Field: "product_data", Reason: err.Error()}
	}
	var parsed ParsedProduct
	if err := json.Unmarshal(encoded, &parsed); err != nil {
		return ParsedProduct{}, &ValidationError{Field: "product_data", Reason: err.Error()}
	}
	if err := parsed.Validate(); err != nil {
		return ParsedProduct{}, err
	}
	return parsed, nil
}

// Description is the marketing copy produced for a product.
type Description struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Highlights        []string `json:"highlights"`
	UsageInstructions string   `json:"usage_instructions,omitempty"`
}

func (d *Description) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	return nil
}

// FAQ is a single question with its category.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

func (f *FAQ) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return &ValidationError{Field: "question", Reason: "required"}
	}
	if strings.TrimSpace(f.Answer) == "" {
		return &ValidationError{Field: "answer", Reason: "required"}
	}
	if !validCategory(f.Category) {
		return &ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is not one of %s", f.Category, strings.Join(Categories, ", ")),
		}
	}
	return nil
}

func validCategory(category string) bool {
	for _, allowed := range Categories {
		if category == allowed {
			return true
		}
	}
	return false
}

// FAQPage holds the full FAQ list for a product.
type FAQPage struct {
	FAQs []FAQ `json:"faqs"`
}

func (p *FAQPage) Validate() error {
	if len(p.FAQs) < MinFAQs {
		return &ValidationError{
			Field:  "faqs",
			Reason: fmt.Sprintf("need at least %d items, got %d", MinFAQs, len(p.FAQs)),
		}
	}
	for i := range p.FAQs {
		if err := p.FAQs[i].Validate(); err != nil {
			return &ValidationError{
				Field:  fmt.Sprintf("faqs[%d]", i),
				Reason: err.Error(),
			}
		}
	}
	return nil
}

// SimilarProduct is one competing product in a comparison.
type SimilarProduct struct {
	Brand           string  `json:"brand"`
	ProductName     string  `json:"product_name"`
	KeyFeatures     string  `json:"key_features"`
	Price           string  `json:"price"`
	Rating          float64 `json:"rating"`
	RatingSource    string  `json:"rating_source"`
	Differentiators string  `json:"differentiators"`
}

func (s *SimilarProduct) Validate() error {
	if strings.TrimSpace(s.Brand) == "" {
		return &ValidationError{Field: "brand", Reason: "required"}
	}
	if strings.TrimSpace(s.ProductName) == "" {
		return &ValidationError{Field: "product_name", Reason: "required"}
	}
	return nil
}

// SimilarProductList is the first-phase comparison output: the alternatives
// before any analysis runs over them.
type SimilarProductList []SimilarProduct

func (l *SimilarProductList) Validate() error {
	if len(*l) != SimilarProductCount {
		return &ValidationError{
			Field:  "similar_products",
			Reason: fmt.Sprintf("need exactly %d items, got %d", SimilarProductCount, len(*l)),
		}
	}
	for i := range *l {
		if err := (*l)[i].Validate(); err != nil {
			return &ValidationError{
				Field:  fmt.Sprintf("similar_products[%d]", i),
				Reason: err.Error(),
			}
		}
	}
	return nil
}

// ComparisonAnalysis is the free-form analysis section of a comparison.
type ComparisonAnalysis struct {
	ComparisonSummary string                   `json:"comparison_summary"`
	FeatureComparison []map[string]interface{} `json:"feature_comparison"`
	PriceAnalysis     map[string]interface{}   `json:"price_analysis"`
	Recommendations   map[string]interface{}   `json:"recommendations"`
	BestValuePick     map[string]interface{}   `json:"best_value_pick"`
}

func (a *ComparisonAnalysis) Validate() error {
	if strings.TrimSpace(a.ComparisonSummary) == "" {
		return &ValidationError{Field: "comparison_summary", Reason: "required"}
	}
	return nil
}

// Comparison is the complete comparison output: the original product, exactly
// three alternatives, and the analysis over them.
type Comparison struct {
	ProductData     ParsedProduct          `json:"product_data"`
	ComparisonBasis map[string]interface{} `json:"comparison_basis"`
	SimilarProducts []SimilarProduct       `json:"similar_products"`
	Analysis        ComparisonAnalysis     `json:"analysis"`
}

func (c *Comparison) Validate() error {
	if err := c.ProductData.Validate(); err != nil {
		return err
	}
	if len(c.SimilarProducts) != SimilarProductCount {
		return &ValidationError{
			Field:  "similar_products",
			Reason: fmt.Sprintf("need exactly %d items, got %d", SimilarProductCount, len(c.SimilarProducts)),
		}
	}
	for i := range c.SimilarProducts {
		if err := c.SimilarProducts[i].Validate(); err != nil {
			return &ValidationError{
				Field:  fmt.Sprintf("similar_products[%d]", i),
				Reason: err.Error(),
			}
		}
	}
	return c.Analysis.Validate()
}
