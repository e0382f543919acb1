package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// CatalogPath is the storefront path that renders a shared catalog
const CatalogPath = "/catalog"

var codeSeparators = regexp.MustCompile(`[,\s]+`)

// BuildCatalogLink returns <origin>/catalog?codes=c1,c2,... with the codes
// joined in the given order. Codes are not deduplicated or escaped.
func BuildCatalogLink(origin string, codes []string) string {
	return strings.TrimRight(origin, "/") + CatalogPath + "?codes=" + strings.Join(codes, ",")
}

// ParseCodeQuery splits free text on commas and whitespace into search tokens.
func ParseCodeQuery(query string) []string {
	parts := codeSeparators.Split(query, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// ParseCatalogCodes reads the comma separated codes parameter of a shared
// link. Blank entries and repeats are dropped; order is kept.
func ParseCatalogCodes(raw string) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		codes = append(codes, part)
	}
	return codes
}

// CodeMatchesAny reports whether code contains any token, ignoring case.
func CodeMatchesAny(code string, tokens []string) bool {
	fold := cases.Fold()
	folded := fold.String(code)
	for _, token := range tokens {
		if strings.Contains(folded, fold.String(token)) {
			return true
		}
	}
	return false
}

// SearchByCodes keeps the products whose code contains any token of the
// query. Input order is preserved; an empty query matches nothing.
func SearchByCodes(products []Product, query string) []Product {
	tokens := ParseCodeQuery(query)
	if len(tokens) == 0 {
		return []Product{}
	}
	matched := make([]Product, 0)
	for i := range products {
		if products[i].MatchesAnyToken(tokens) {
			matched = append(matched, products[i])
		}
	}
	return matched
}

// ProductCodes extracts the codes of the given products in order
func ProductCodes(products []Product) []string {
	codes := make([]string, len(products))
	for i := range products {
		codes[i] = products[i].Code
	}
	return codes
}
