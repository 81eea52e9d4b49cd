package userservice

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/bloglist/internal/common"
)

func TestValidateCredentials(t *testing.T) {
	testCases := []struct {
		name     string
		username any
		password any
		wantErr  string
	}{
		{name: "short username", username: "ab", password: "longpass", wantErr: "username must be at least 3 characters long"},
		{name: "short password", username: "abc", password: "pw", wantErr: "password must be at least 3 characters long"},
		{name: "valid", username: "abc", password: "longpass"},
		{name: "missing username", username: nil, password: "longpass", wantErr: "missing username or password"},
		{name: "missing password", username: "abc", password: nil, wantErr: "missing username or password"},
		{name: "empty username", username: "", password: "longpass", wantErr: "missing username or password"},
		{name: "both missing", username: nil, password: nil, wantErr: "missing username or password"},
		{name: "numeric username", username: float64(12345), password: "longpass", wantErr: "username must be a string"},
		{name: "boolean password", username: "abc", password: true, wantErr: "password must be a string"},
		{name: "both non strings", username: float64(1), password: float64(2), wantErr: "username must be a string"},
		{name: "missing wins over short", username: "a", password: "", wantErr: "missing username or password"},
		{name: "username checked before password", username: "ab", password: "pw", wantErr: "username must be at least 3 characters long"},
		{name: "multibyte username", username: "äöü", password: "longpass"},
		{name: "password too long", username: "abc", password: strings.Repeat("a", 73), wantErr: "password must be at most 72 bytes long"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCredentials(tc.username, tc.password)

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var vErr common.ValidationError
			if assert.True(t, errors.As(err, &vErr)) {
				assert.Equal(t, tc.wantErr, vErr.Message)
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestValidateCredentialsIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.EqualError(t, ValidateCredentials("ab", "pw"), "username must be at least 3 characters long")
	}
}
