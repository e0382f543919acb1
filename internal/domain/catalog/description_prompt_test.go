package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionRequest_Validate(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		req     DescriptionRequest
		wantErr bool
	}{
		{"valid minimal", DescriptionRequest{ProductName: "Sofá"}, false},
		{"valid full", DescriptionRequest{ProductName: "Sofá", Category: "Casa", Price: price(1500)}, false},
		{"blank name", DescriptionRequest{ProductName: "   "}, true},
		{"long name", DescriptionRequest{ProductName: strings.Repeat("a", 101)}, true},
		{"long category", DescriptionRequest{ProductName: "x", Category: strings.Repeat("c", 51)}, true},
		{"accented name at limit", DescriptionRequest{ProductName: strings.Repeat("ã", 100)}, false},
		{"accented name over limit", DescriptionRequest{ProductName: strings.Repeat("ã", 101)}, true},
		{"accented category at limit", DescriptionRequest{ProductName: "x", Category: strings.Repeat("ç", 50)}, false},
		{"negative price", DescriptionRequest{ProductName: "x", Price: price(-1)}, true},
		{"huge price", DescriptionRequest{ProductName: "x", Price: price(1000001)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizePromptText(t *testing.T) {
	assert.Equal(t, "scriptalert(x)/script Tom  Jerry", SanitizePromptText(`<script>alert("x")</script> Tom & Jerry`))
}

func TestDescriptionRequest_BuildPrompt(t *testing.T) {
	price := 49.9
	prompt := DescriptionRequest{ProductName: `Caneca "Top"`, Category: "Casa", Price: &price}.BuildPrompt()

	assert.True(t, strings.HasPrefix(prompt, `Crie uma descrição profissional e atrativa para o produto "Caneca Top"`))
	assert.Contains(t, prompt, `da categoria "Casa"`)
	assert.Contains(t, prompt, "com preço de R$ 49.90")
	assert.True(t, strings.HasSuffix(prompt, "Use um tom profissional mas acessível."))

	bare := DescriptionRequest{ProductName: "Caneca"}.BuildPrompt()
	assert.NotContains(t, bare, "categoria")
	assert.NotContains(t, bare, "R$")
}
