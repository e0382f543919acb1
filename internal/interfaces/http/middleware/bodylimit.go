package middleware

import (
	"mime"
	"net/http"

	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps every request body at maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitWithUploads(maxBytes, maxBytes)
}

// BodyLimitWithUploads caps multipart uploads (product images, store logo)
// at uploadMaxBytes and every other body at maxBytes. A declared length
// over the cap is refused up front; chunked bodies fail on read with
// *http.MaxBytesError.
func BodyLimitWithUploads(maxBytes, uploadMaxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		limit := maxBytes
		if isMultipart(c.GetHeader("Content-Type")) {
			limit = uploadMaxBytes
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "multipart/form-data"
}
