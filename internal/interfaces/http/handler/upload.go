package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// uploadedFile is one file read from a multipart form
type uploadedFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        []byte
}

// readFormFiles reads every file sent under field. It writes the error
// response itself and returns false when the form cannot be parsed.
func (h *BaseHandler) readFormFiles(c *gin.Context, field string) ([]uploadedFile, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, "Upload exceeds the maximum allowed size")
			return nil, false
		}
		h.BadRequest(c, "Invalid multipart form")
		return nil, false
	}

	headers := form.File[field]
	files := make([]uploadedFile, 0, len(headers))
	for _, fh := range headers {
		body, err := readFileHeader(fh)
		if err != nil {
			h.BadRequest(c, "Failed to read uploaded file "+fh.Filename)
			return nil, false
		}
		files = append(files, uploadedFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        body,
		})
	}
	return files, true
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
