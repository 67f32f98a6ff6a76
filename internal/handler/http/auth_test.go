package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etrackhq/etrack-backend-go/internal/domain/auth"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginHandler(svc auth.AuthService) AuthHandler {
	return NewAuthHandler(svc, jwt.NewJWTService("test-secret-key-for-jwt", "1h"))
}

type fakeAuthService struct {
	resp auth.LoginResponse
	err  error
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if f.err != nil {
		return auth.LoginResponse{}, f.err
	}
	return f.resp, nil
}

func postLogin(t *testing.T, handler AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

func TestLoginHandler_Success(t *testing.T) {
	handler := newLoginHandler(&fakeAuthService{
		resp: auth.LoginResponse{
			AccessToken: "token",
			EmployeeID:  "emp-1",
			FullName:    "Alice",
			Role:        "manager",
		},
	})

	rec := postLogin(t, handler, `{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "token", data["access_token"])
	assert.Equal(t, "emp-1", data["employee_id"])
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	handler := newLoginHandler(&fakeAuthService{err: auth.ErrInvalidCredentials})

	rec := postLogin(t, handler, `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestLoginHandler_MalformedBody(t *testing.T) {
	handler := newLoginHandler(&fakeAuthService{})

	rec := postLogin(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
