package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// WhatsAppBaseURL is the deep-link endpoint used for buyer/seller contact
const WhatsAppBaseURL = "https://wa.me/"

// ProductInterestMessage is the message a buyer sends about one product
func ProductInterestMessage(name, code string) string {
	return fmt.Sprintf("Olá! Tenho interesse no produto: %s (%s)", name, code)
}

// SellerContactMessage is the message a buyer sends from a seller page
func SellerContactMessage(sellerName string) string {
	return fmt.Sprintf("Olá %s! Tenho interesse em seus produtos.", sellerName)
}

// CatalogShareMessage is the message a seller sends with a catalog link
func CatalogShareMessage(link string) string {
	return fmt.Sprintf("Confira nossos produtos selecionados: %s", link)
}

// WhatsAppLink builds https://wa.me/?text=<message>. When phone has
// digits the link targets that number directly.
func WhatsAppLink(phone, message string) string {
	return WhatsAppBaseURL + phoneDigits(phone) + "?text=" + encodeURIComponent(message)
}

// encodeURIComponent escapes like the browser function of the same name:
// spaces become %20 rather than '+'.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
