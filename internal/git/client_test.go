package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	c := NewClient()
	assert.Equal(t, 5*time.Minute, c.Timeout)
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		msg  string
		auth bool
	}{
		{"remote: Authentication failed for 'https://example.com'", true},
		{"git@github.com: Permission denied (publickey).", true},
		{"fatal: could not read Username for 'https://github.com'", true},
		{"The requested URL returned error: 403", true},
		{"error: RPC failed; HTTP 401", true},
		{"fatal: unable to access: Could not resolve host", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.auth, isAuthError(tt.msg), tt.msg)
	}
}

func TestAuthError_Error(t *testing.T) {
	err := &AuthError{URL: "https://example.com/repo", Message: "denied"}
	assert.Contains(t, err.Error(), "https://example.com/repo")
	assert.Contains(t, err.Error(), "denied")
}
