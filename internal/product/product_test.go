// File path: internal/product/product_test.go
package product

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func sampleFAQ(category string) FAQ {
	return FAQ{
		Question: "How often should the serum be applied?",
		Answer:   "Apply once daily in the evening on clean skin.",
		Category: category,
	}
}

func sampleFAQPage(count int) FAQPage {
	page := FAQPage{}
	for i := 0; i < count; i++ {
		faq := sampleFAQ(Categories[i%len(Categories)])
		faq.Question = fmt.Sprintf("%s (%d)", faq.Question, i)
		page.FAQs = append(page.FAQs, faq)
	}
	return page
}

func sampleComparison() Comparison {
	similar := make([]SimilarProduct, 0, SimilarProductCount)
	for i := 0; i < SimilarProductCount; i++ {
		similar = append(similar, SimilarProduct{
			Brand:        fmt.Sprintf("Brand %d", i),
			ProductName:  fmt.Sprintf("Serum %d", i),
			KeyFeatures:  "Hyaluronic Acid",
			Price:        "Rs 699",
			Rating:       4.2,
			RatingSource: "estimated",
		})
	}
	return Comparison{
		ProductData:     ParsedProduct{ProductName: "Hydra Serum"},
		SimilarProducts: similar,
		Analysis:        ComparisonAnalysis{ComparisonSummary: "All three undercut on price."},
	}
}

func TestParsedProductRequiresName(t *testing.T) {
	parsed := ParsedProduct{Concentration: "2%"}
	err := parsed.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Field != "product_name" {
		t.Fatalf("unexpected field %q", valErr.Field)
	}
}

func TestParsedFromMap(t *testing.T) {
	parsed, err := ParsedFromMap(map[string]interface{}{
		"product_name":    "Hydra Serum",
		"key_ingredients": "Hyaluronic Acid",
		"price":           "Rs 799",
	})
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	if parsed.ProductName != "Hydra Serum" || parsed.KeyIngredients != "Hyaluronic Acid" {
		t.Fatalf("unexpected parsed product: %+v", parsed)
	}

	if _, err := ParsedFromMap(map[string]interface{}{"price": "Rs 799"}); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestFAQPageMinimum(t *testing.T) {
	cases := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "fourteen rejected", count: 14, wantErr: true},
		{name: "fifteen accepted", count: 15},
		{name: "twenty accepted", count: 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := sampleFAQPage(tc.count)
			err := page.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %d items", tc.count)
				}
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.FAQs) != tc.count {
				t.Fatalf("validation must not pad or truncate: got %d", len(page.FAQs))
			}
		})
	}
}

func TestFAQCategoryEnum(t *testing.T) {
	for _, category := range Categories {
		faq := sampleFAQ(category)
		if err := faq.Validate(); err != nil {
			t.Fatalf("category %q should be valid: %v", category, err)
		}
	}
	faq := sampleFAQ("Marketing")
	err := faq.Validate()
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !strings.Contains(err.Error(), "Marketing") {
		t.Fatalf("error should name the bad category: %v", err)
	}
}

func TestComparisonRequiresExactlyThree(t *testing.T) {
	comparison := sampleComparison()
	if err := comparison.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comparison.SimilarProducts = comparison.SimilarProducts[:2]
	if err := comparison.Validate(); err == nil {
		t.Fatal("expected error for two alternatives")
	}

	comparison = sampleComparison()
	comparison.SimilarProducts = append(comparison.SimilarProducts, comparison.SimilarProducts[0])
	if err := comparison.Validate(); err == nil {
		t.Fatal("expected error for four alternatives")
	}
}

func TestComparisonAnalysisRequiresSummary(t *testing.T) {
	comparison := sampleComparison()
	comparison.Analysis.ComparisonSummary = "  "
	err := comparison.Validate()
	if err == nil {
		t.Fatal("expected error for empty summary")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "comparison_summary" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDescriptionValidate(t *testing.T) {
	desc := Description{Title: "Hydra Serum", Description: "Deep hydration for daily use."}
	if err := desc.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	desc.Description = ""
	if err := desc.Validate(); err == nil {
		t.Fatal("expected error for empty body")
	}
}
