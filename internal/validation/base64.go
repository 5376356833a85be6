package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// Base64Payload validates standard base64 whose decoded form is at most
// maxBytes long. Empty strings pass so the rule composes with Required.
func Base64Payload(maxBytes int) validation.Rule {
	return validation.By(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_base64_type", "must be a string")
		}
		if s == "" {
			return nil
		}
		if base64.StdEncoding.DecodedLen(len(s)) > maxBytes+2 {
			return validation.NewError("validation_base64_size", "decoded payload is too large")
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return validation.NewError("validation_base64", "must be valid base64-encoded data")
		}
		if len(decoded) > maxBytes {
			return validation.NewError("validation_base64_size", "decoded payload is too large")
		}
		return nil
	})
}
