package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
)

const (
	// MaxPromptProductNameLength bounds the product name sent to the model
	MaxPromptProductNameLength = 100
	// MaxPromptCategoryLength bounds the category sent to the model
	MaxPromptCategoryLength = 50
	// MaxPromptPrice bounds the price sent to the model
	MaxPromptPrice = 1000000
)

// DescriptionSystemPrompt frames the model as a sales copywriter
const DescriptionSystemPrompt = "Você é um especialista em marketing e vendas que cria descrições de produtos atrativas e profissionais em português brasileiro."

var promptUnsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// DescriptionRequest is the input to AI description generation
type DescriptionRequest struct {
	ProductName string
	Category    string
	Price       *float64
}

// Validate checks type and length limits before anything leaves the process
func (r DescriptionRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return shared.NewDomainError("PRODUCT_NAME_REQUIRED", "productName is required and must be a non-empty string")
	}
	if utf8.RuneCountInString(r.ProductName) > MaxPromptProductNameLength {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "productName must be less than 100 characters")
	}
	if utf8.RuneCountInString(r.Category) > MaxPromptCategoryLength {
		return shared.NewDomainError("INVALID_CATEGORY", "category must be a string with less than 50 characters")
	}
	if r.Price != nil && (*r.Price < 0 || *r.Price > MaxPromptPrice) {
		return shared.NewDomainError("INVALID_PRICE", "price must be a positive number less than 1,000,000")
	}
	return nil
}

// SanitizePromptText strips characters that could break out of the quoted
// prompt values.
func SanitizePromptText(s string) string {
	return promptUnsafeChars.Replace(s)
}

// BuildPrompt renders the user prompt for the description model
func (r DescriptionRequest) BuildPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crie uma descrição profissional e atrativa para o produto \"%s\"", SanitizePromptText(r.ProductName))
	if category := SanitizePromptText(r.Category); category != "" {
		fmt.Fprintf(&b, " da categoria \"%s\"", category)
	}
	if r.Price != nil && *r.Price > 0 {
		fmt.Fprintf(&b, " com preço de R$ %.2f", *r.Price)
	}
	b.WriteString(". A descrição deve ter entre 50 e 150 palavras, destacar os benefícios do produto e ser persuasiva para vendas. Use um tom profissional mas acessível.")
	return b.String()
}
