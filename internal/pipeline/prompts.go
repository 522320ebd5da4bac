// File path: internal/pipeline/prompts.go
package pipeline

import "fmt"

const (
	descriptionGuidance = "Create a professional product description."
	faqGuidance         = "Generate comprehensive FAQs with categories."
	comparisonGuidance  = "Compare products based on features and price."
)

func parsePrompt(rawText string) string {
	return fmt.Sprintf(`Extract product information from text and return as JSON:

%s

Return JSON with fields: product_name, concentration, skin_type, key_ingredients, benefits, how_to_use, side_effects, price

Ensure all string fields are present (use empty string if not found).`, rawText)
}

const parseFormat = `{"product_name": "string", "concentration": "string", "skin_type": "string", "key_ingredients": "string", "benefits": "string", "how_to_use": "string", "side_effects": "string", "price": "string"}`

func descriptionPrompt(productJSON string) string {
	return fmt.Sprintf(`Using template and product data, create product description:

TEMPLATE:
%s

PRODUCT:
%s

Return JSON with: title, description, highlights (array), usage_instructions`, descriptionGuidance, productJSON)
}

const descriptionFormat = `{"title": "string", "description": "string", "highlights": ["string"], "usage_instructions": "string"}`

func similarProductsPrompt(name, ingredients, price string) string {
	return fmt.Sprintf(`You are a skincare market research expert.

ORIGINAL PRODUCT
Name: %s
Ingredients: %s
Price: %s

TASK
Return EXACTLY 3 real competing products from the Indian market.

RULES
- Different brands
- JSON ONLY
- No markdown
- Ratings must be ESTIMATED`, name, ingredients, price)
}

const similarProductsFormat = `[{"brand": "Brand Name", "product_name": "Product Name", "key_features": "Key features description", "price": "Rs 699", "rating": 4.3, "rating_source": "estimated", "differentiators": "What makes it different"}]`

func comparisonPrompt(productJSON, similarJSON string) string {
	return fmt.Sprintf(`Compare the ORIGINAL product with the ALTERNATIVE products.

ORIGINAL PRODUCT:
%s

ALTERNATIVE PRODUCTS:
%s

TEMPLATE:
%s

Return JSON with:
- comparison_summary: string
- feature_comparison: array of comparison points
- price_analysis: object with price insights
- recommendations: object with recommendation
- best_value_pick: object with best value selection

IMPORTANT:
- Ratings are ESTIMATED
- Do NOT invent external data
- No markdown`, productJSON, similarJSON, comparisonGuidance)
}

const comparisonFormat = `{"comparison_summary": "string", "feature_comparison": [{}], "price_analysis": {}, "recommendations": {}, "best_value_pick": {}}`

func faqPrompt(productJSON string) string {
	return fmt.Sprintf(`Create MINIMUM 15 FAQs for this product with categories:

PRODUCT:
%s

TEMPLATE:
%s

Return JSON with array of FAQs. Each FAQ must have:
- question: string
- answer: string (3-5 sentences)
- category: one of [Informational, Safety, Usage, Purchase, Comparison]

MINIMUM 15 FAQs REQUIRED.`, productJSON, faqGuidance)
}

const faqFormat = `{"faqs": [{"question": "string", "answer": "string", "category": "Informational"}]}`
