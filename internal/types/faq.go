package types

// FAQ categories accepted on creation
const (
	FAQCategoryTechnical   = "Technical"
	FAQCategoryPricing     = "Pricing"
	FAQCategoryIntegration = "Integration"
	FAQCategoryFeatures    = "Features"
)

// FAQItem is a single question/answer entry
type FAQItem struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// CreateFAQRequest represents the request to add a FAQ item.
type CreateFAQRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Category string   `json:"category" validate:"required,oneof=Technical Pricing Integration Features"`
	Tags     []string `json:"tags,omitempty"`
}
