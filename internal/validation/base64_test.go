package validation

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase64Payload(t *testing.T) {
	rule := Base64Payload(8)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"valid", "aGVsbG8=", false},
		{"empty", "", false},
		{"exactly at limit", base64.StdEncoding.EncodeToString([]byte("12345678")), false},
		{"one byte over limit", base64.StdEncoding.EncodeToString([]byte("123456789")), true},
		{"far over limit", strings.Repeat("QUFB", 100), true},
		{"not base64", "not base64!", true},
		{"url alphabet", "-_-_", true},
		{"not a string", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
