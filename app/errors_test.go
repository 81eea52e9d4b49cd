package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

func TestServiceErrorResponse(t *testing.T) {
	app := newTestApplication(t)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "Validation",
			err:        common.ValidationError{Field: "title", Message: "title and url are required"},
			wantStatus: http.StatusBadRequest,
			wantError:  "title and url are required",
		},
		{
			name:       "Malformed ID",
			err:        common.ErrMalformedID,
			wantStatus: http.StatusBadRequest,
			wantError:  "malformatted id",
		},
		{
			name:       "Not Found",
			err:        fmt.Errorf("find blog: %w", common.ErrRecordNotFound),
			wantStatus: http.StatusNotFound,
			wantError:  "resource not found",
		},
		{
			name:       "Unauthorized",
			err:        common.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantError:  "token missing or invalid",
		},
		{
			name:       "Owner Gone Before Insert",
			err:        blogservice.ErrUserForeignKey,
			wantStatus: http.StatusUnauthorized,
			wantError:  "token missing or invalid",
		},
		{
			name:       "Forbidden",
			err:        common.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantError:  "only the creator can modify a blog",
		},
		{
			name:       "Duplicate Username",
			err:        userservice.ErrDuplicateUsername,
			wantStatus: http.StatusBadRequest,
			wantError:  "user already exists",
		},
		{
			name:       "Unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "the server encountered a problem and could not process your request",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			app.serviceErrorResponse(res, httptest.NewRequest(http.MethodPost, "/api/blogs", nil), tc.err)

			var body map[string]any
			require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))

			assert.Equal(t, tc.wantStatus, res.Code)
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}
