package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/FlightLedger/FL-Backend/internal/middleware"
	"github.com/FlightLedger/FL-Backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

// mockFetcher implements middleware.SessionFetcher without a database.
type mockFetcher struct {
	session utils.SessionData
	err     error
}

func (m mockFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	return m.session, m.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func callWithCookie(mw func(http.Handler) http.Handler, inner http.Handler, cookieValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)
	return rec
}

func TestRequireLogin_MissingCookieRedirects(t *testing.T) {
	mw := middleware.RequireLogin(mockFetcher{})

	rec := callWithCookie(mw, okHandler(), "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireLogin_UnknownSessionRedirects(t *testing.T) {
	mw := middleware.RequireLogin(mockFetcher{err: errors.New("session not found")})

	rec := callWithCookie(mw, okHandler(), "nonexistent")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireLogin_ExpiredSessionRedirects(t *testing.T) {
	mw := middleware.RequireLogin(mockFetcher{
		session: utils.SessionData{UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)},
	})

	rec := callWithCookie(mw, okHandler(), "expired")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireLogin_ValidSessionInjectsContext(t *testing.T) {
	mw := middleware.RequireLogin(mockFetcher{
		session: utils.SessionData{UserID: "u1", Name: "Alice", ExpiresAt: time.Now().Add(time.Hour)},
	})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok || userID != "u1" {
			http.Error(w, "wrong userID in context", http.StatusInternalServerError)
			return
		}
		name, ok := utils.GetNameFromContext(r.Context())
		if !ok || name != "Alice" {
			http.Error(w, "wrong name in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	rec := callWithCookie(mw, inner, "valid")

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRequireLoginAPI_RejectsWithJSON(t *testing.T) {
	mw := middleware.RequireLoginAPI(mockFetcher{err: errors.New("session not found")})

	rec := callWithCookie(mw, okHandler(), "nonexistent")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRequireLoginAPI_ValidSessionPasses(t *testing.T) {
	mw := middleware.RequireLoginAPI(mockFetcher{
		session: utils.SessionData{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)},
	})

	rec := callWithCookie(mw, okHandler(), "valid")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodOverride(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		override string
		want     string
	}{
		{"put override", http.MethodPost, "PUT", http.MethodPut},
		{"delete override", http.MethodPost, "DELETE", http.MethodDelete},
		{"bogus override ignored", http.MethodPost, "PATCH", http.MethodPost},
		{"plain post untouched", http.MethodPost, "", http.MethodPost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{"destination": {"JFK"}}
			if tc.override != "" {
				values.Set("_method", tc.override)
			}
			req := httptest.NewRequest(tc.method, "/flights/AA100", strings.NewReader(values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			var got string
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Method
				// Downstream handlers still see the form fields.
				assert.Equal(t, "JFK", r.PostFormValue("destination"))
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			middleware.MethodOverride(inner).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoginThrottle_LimitsPerIP(t *testing.T) {
	throttle := middleware.NewLoginThrottle(0.01, 2)
	handler := throttle.Middleware(okHandler())

	newReq := func(addr string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		return req
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newReq("10.0.0.1:1234"))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newReq("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client is not affected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newReq("10.0.0.2:1234"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
