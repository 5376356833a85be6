package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "derived key", key: "u1_logo.png"},
		{name: "nested key", key: "folder/u1_cv.pdf"},
		{name: "single dot", key: "a.b.c"},
		{name: "empty", key: "", wantErr: ErrEmptyKey},
		{name: "parent segment", key: "../etc/passwd", wantErr: ErrUnsafeKey},
		{name: "embedded parent segment", key: "a/../b", wantErr: ErrUnsafeKey},
		{name: "double dot without slash", key: "u1..png", wantErr: ErrUnsafeKey},
		{name: "leading slash", key: "/etc/passwd", wantErr: ErrUnsafeKey},
		{name: "backslash", key: `a\b.png`, wantErr: ErrUnsafeKey},
		{name: "windows traversal", key: `..\..\win.ini`, wantErr: ErrUnsafeKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.key != "" {
				assert.NotContains(t, err.Error(), tt.key)
			}
		})
	}
}
