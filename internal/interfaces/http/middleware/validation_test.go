package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productForm struct {
	Code  string   `json:"code" binding:"required,max=5"`
	Name  string   `json:"name" binding:"required,min=2"`
	Price int      `json:"price" binding:"gte=0"`
	Tags  []string `json:"tags" binding:"max=2"`
}

func postProduct(t *testing.T, body string) dto.Response {
	t.Helper()
	SetupValidator()

	engine := gin.New()
	engine.Use(RequestID())
	engine.POST("/api/v1/dashboard/products", func(c *gin.Context) {
		var form productForm
		if err := c.ShouldBindJSON(&form); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(form))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-validate")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if !resp.Success {
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	return resp
}

func detailsByField(resp dto.Response) map[string]string {
	out := make(map[string]string)
	for _, d := range resp.Error.Details {
		out[d.Field] = d.Message
	}
	return out
}

func TestHandleValidationError_FieldRules(t *testing.T) {
	resp := postProduct(t, `{"code":"TOOLONG","name":"x","price":-1,"tags":["a","b","c"]}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.Equal(t, "req-validate", resp.Error.RequestID)
	assert.Equal(t, map[string]string{
		"code":  "Must be at most 5 characters",
		"name":  "Must be at least 2 characters",
		"price": "Must be greater than or equal to 0",
		"tags":  "Must have at most 2 items",
	}, detailsByField(resp))
}

func TestHandleValidationError_Required(t *testing.T) {
	resp := postProduct(t, `{}`)

	require.NotNil(t, resp.Error)
	fields := detailsByField(resp)
	assert.Equal(t, "This field is required", fields["code"])
	assert.Equal(t, "This field is required", fields["name"])
}

func TestHandleValidationError_TypeMismatch(t *testing.T) {
	resp := postProduct(t, `{"code":"A1","name":"Vaso","price":"cheap"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.Equal(t, map[string]string{"price": "Must be of type int"}, detailsByField(resp))
}

func TestHandleValidationError_MalformedBody(t *testing.T) {
	for _, body := range []string{`{"code":`, `not json`, ``} {
		resp := postProduct(t, body)

		require.NotNil(t, resp.Error, "body %q", body)
		assert.Equal(t, "Malformed JSON body", resp.Error.Message, "body %q", body)
		assert.Empty(t, resp.Error.Details)
		assert.Equal(t, "req-validate", resp.Error.RequestID)
	}
}

func TestHandleValidationError_ValidBody(t *testing.T) {
	resp := postProduct(t, `{"code":"A1","name":"Vaso","price":10,"tags":["casa"]}`)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestValidationMessage(t *testing.T) {
	type sample struct {
		Email  string   `validate:"email"`
		Color  string   `validate:"hexcolor"`
		Kind   string   `validate:"oneof=clothing food"`
		ID     string   `validate:"uuid"`
		Digits string   `validate:"len=4"`
		Rank   int      `validate:"max=3"`
		Codes  []string `validate:"min=1"`
		Site   string   `validate:"url"`
	}

	err := validator.New().Struct(sample{
		Email: "nope", Color: "red", Kind: "toys", ID: "x", Digits: "12", Rank: 9, Site: "nope",
	})
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	got := make(map[string]string)
	for _, fe := range fieldErrs {
		got[fe.Field()] = validationMessage(fe)
	}
	assert.Equal(t, map[string]string{
		"Email":  "Invalid email format",
		"Color":  "Must be a hex color such as #1a2b3c",
		"Kind":   "Must be one of: clothing food",
		"ID":     "Invalid UUID format",
		"Digits": "Must be exactly 4 characters",
		"Rank":   "Must be at most 3",
		"Codes":  "Must have at least 1 items",
		"Site":   "Invalid URL format",
	}, got)
}
