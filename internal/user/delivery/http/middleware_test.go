package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favoritesapp/favorites-api/internal/user/domain"
	"github.com/favoritesapp/favorites-api/pkg/auth"
)

func TestAuthenticate(t *testing.T) {
	mw := NewMiddleware(nil)

	token, err := auth.GenerateToken(7, "Ada", domain.RoleClient)
	require.NoError(t, err)

	var gotUserID uint
	var gotRole string
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDKey).(uint)
		gotRole, _ = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(7), gotUserID)
	assert.Equal(t, domain.RoleClient, gotRole)
}

func TestAuthenticate_Failures(t *testing.T) {
	mw := NewMiddleware(nil)
	handler := mw.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed", "Bearer"},
		{"bad token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	mw := NewMiddleware(nil)
	handler := mw.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	adminToken, err := auth.GenerateToken(1, "Root", domain.RoleAdmin)
	require.NoError(t, err)
	clientToken, err := auth.GenerateToken(2, "Ada", domain.RoleClient)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
