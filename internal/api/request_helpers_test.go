package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		target      func() interface{}
		wantMessage string
		wantTagErr  bool
	}{
		{
			name:        "missing body on credentials",
			body:        "",
			target:      func() interface{} { return &CredentialsRequest{} },
			wantMessage: service.MsgCredentialsRequired,
			wantTagErr:  true,
		},
		{
			name:        "missing password",
			body:        `{"email":"a@example.com"}`,
			target:      func() interface{} { return &CredentialsRequest{} },
			wantMessage: service.MsgCredentialsRequired,
			wantTagErr:  true,
		},
		{
			name:   "complete credentials",
			body:   `{"email":"a@example.com","password":"pw"}`,
			target: func() interface{} { return &CredentialsRequest{} },
		},
		{
			name:        "blank refresh token",
			body:        `{"refreshToken":""}`,
			target:      func() interface{} { return &RefreshTokenRequest{} },
			wantMessage: service.MsgRefreshTokenRequired,
			wantTagErr:  true,
		},
		{
			name:        "task without title",
			body:        `{"description":"d"}`,
			target:      func() interface{} { return &CreateTaskRequest{} },
			wantMessage: domain.MsgTitleRequired,
			wantTagErr:  true,
		},
		{
			name:   "task with title",
			body:   `{"title":"t"}`,
			target: func() interface{} { return &CreateTaskRequest{} },
		},
		{
			name:   "empty patch",
			body:   `{}`,
			target: func() interface{} { return &UpdateTaskRequest{} },
		},
		{
			name:        "malformed json",
			body:        `{"title":`,
			target:      func() interface{} { return &CreateTaskRequest{} },
			wantMessage: MsgInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := decodeBody(httptest.NewRecorder(), req, tt.target())

			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			msg, ok := domain.PublicMessage(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantMessage, msg)

			var tagErrs validator.ValidationErrors
			assert.Equal(t, tt.wantTagErr, errors.As(err, &tagErrs))
		})
	}
}
