package domain

import (
	"strings"
)

// DeriveObjectKey builds the deterministic key "<requesterID>_<purpose>.<ext>".
//
// Only the lower-cased extension of originalFilename is used. The derived key
// is validated and rejected as a whole if unsafe; it is never truncated. The
// MIME type matching the extension is returned alongside the key.
func DeriveObjectKey(requesterID string, purpose Purpose, originalFilename string) (key, contentType string, err error) {
	if requesterID == "" {
		return "", "", ErrMissingRequester
	}
	if _, err := ParsePurpose(string(purpose)); err != nil {
		return "", "", err
	}

	ext := extension(originalFilename)
	if ext == "" {
		return "", "", ErrUnsupportedExtension
	}
	contentType, err = purpose.ContentType(ext)
	if err != nil {
		return "", "", err
	}

	key = requesterID + "_" + string(purpose) + "." + ext
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}
	return key, contentType, nil
}

// PurposeFromKey recovers the purpose encoded in a derived key.
//
// The second result is false when key does not follow the derived-key
// convention.
func PurposeFromKey(key string) (Purpose, bool) {
	dot := strings.LastIndex(key, ".")
	underscore := strings.LastIndex(key, "_")
	if dot < 0 || underscore < 0 || underscore > dot {
		return "", false
	}

	p, err := ParsePurpose(key[underscore+1 : dot])
	if err != nil {
		return "", false
	}
	if _, err := p.ContentType(key[dot+1:]); err != nil {
		return "", false
	}
	return p, true
}

func extension(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 || dot == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[dot+1:])
}
