package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLink(t *testing.T) {
	msg := ProductInterestMessage("Casa & Jardim", "A1")
	assert.Equal(t, "Olá! Tenho interesse no produto: Casa & Jardim (A1)", msg)

	link := WhatsAppLink("", msg)
	assert.Equal(t, "https://wa.me/?text=Ol%C3%A1%21%20Tenho%20interesse%20no%20produto%3A%20Casa%20%26%20Jardim%20%28A1%29", link)
}

func TestWhatsAppLink_WithPhone(t *testing.T) {
	link := WhatsAppLink("+55 (11) 98888-7777", "oi")
	assert.Equal(t, "https://wa.me/5511988887777?text=oi", link)
}

func TestShareMessages(t *testing.T) {
	assert.Equal(t, "Olá Maria! Tenho interesse em seus produtos.", SellerContactMessage("Maria"))
	assert.Equal(t, "Confira nossos produtos selecionados: https://x/catalog?codes=A1",
		CatalogShareMessage("https://x/catalog?codes=A1"))
}
