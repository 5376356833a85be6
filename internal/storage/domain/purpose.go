package domain

import (
	"slices"
	"strings"
)

// Purpose scopes an upload to a category with its own extension allow-list.
type Purpose string

const (
	// PurposeLogo is a company logo. Logos are public-readable.
	PurposeLogo Purpose = "logo"

	// PurposeCV is a candidate CV.
	PurposeCV Purpose = "cv"
)

// allowedTypes maps each purpose to its permitted extensions and their MIME types.
var allowedTypes = map[Purpose]map[string]string{
	PurposeLogo: {
		"png":  "image/png",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"gif":  "image/gif",
		"webp": "image/webp",
	},
	PurposeCV: {
		"pdf":  "application/pdf",
		"doc":  "application/msword",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"odt":  "application/vnd.oasis.opendocument.text",
	},
}

// ParsePurpose returns the Purpose named by s or ErrInvalidPurpose.
func ParsePurpose(s string) (Purpose, error) {
	p := Purpose(s)
	if _, ok := allowedTypes[p]; !ok {
		return "", ErrInvalidPurpose
	}
	return p, nil
}

// ContentType returns the MIME type for ext under p, or ErrUnsupportedExtension.
// ext is compared in lower case and without a leading dot.
func (p Purpose) ContentType(ext string) (string, error) {
	types, ok := allowedTypes[p]
	if !ok {
		return "", ErrInvalidPurpose
	}
	mime, ok := types[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return "", ErrUnsupportedExtension
	}
	return mime, nil
}

// AllowedExtensions lists the permitted extensions for p in sorted order.
func (p Purpose) AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedTypes[p]))
	for ext := range allowedTypes[p] {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// IsPublic reports whether objects of this purpose may be served without an ownership check.
func (p Purpose) IsPublic() bool {
	return p == PurposeLogo
}
