package domain

import "strings"

// ValidateKey rejects keys that could escape the bucket namespace.
//
// A key is unsafe if it contains "..", begins with "/" or contains a
// backslash. The error never echoes the key itself.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrUnsafeKey
	}
	return nil
}
