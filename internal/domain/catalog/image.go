package catalog

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// MaxImageSize is the largest accepted image upload (5 MiB)
const MaxImageSize int64 = 5 << 20

// AllowedImageContentTypes lists the accepted image formats. SVG is not
// accepted because it can carry script.
var AllowedImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ValidateImage checks the content type and size of an upload
func ValidateImage(contentType string, size int64) error {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := AllowedImageContentTypes[contentType]; !ok {
		return shared.NewDomainError("INVALID_IMAGE_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Use JPEG, PNG, WebP or GIF", contentType))
	}
	if size <= 0 {
		return shared.NewDomainError("INVALID_IMAGE", "Image file is empty")
	}
	if size > MaxImageSize {
		return shared.NewDomainError("IMAGE_TOO_LARGE", "Image cannot exceed 5 MiB")
	}
	return nil
}

// SanitizeFileName keeps a safe base name for object keys
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFileNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "image"
	}
	if len(base) > 100 {
		base = base[len(base)-100:]
	}
	return base
}

// ImageObjectKey builds the storage key "<user_id>/<ulid>-<file name>".
// ULIDs sort by creation time, so a seller's uploads list in order.
func ImageObjectKey(userID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%s-%s", userID.String(), ulid.Make().String(), SanitizeFileName(fileName))
}
