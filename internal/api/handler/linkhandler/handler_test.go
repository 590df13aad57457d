package linkhandler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"shortener/internal/api/handler/linkhandler"
	mocklinks "shortener/internal/links/mock"
	"shortener/pkg/domain"
	"shortener/pkg/serrors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMux(t *testing.T, sec *linkhandler.SecHandler) (*mocklinks.MockService, *http.ServeMux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocklinks.NewMockService(ctrl)
	mux := http.NewServeMux()
	linkhandler.New(linkhandler.Deps{Links: svc}, sec).Register(mux)

	return svc, mux
}

func do(mux http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	return rec
}

func TestShorten_success(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	link := &domain.Link{Code: "c984d06a", URL: "https://example.com"}
	svc.EXPECT().Shorten(gomock.Any(), "https://example.com").Return(link, nil)
	svc.EXPECT().ShortURL(domain.ShortCode("c984d06a")).Return("http://localhost:8080/c984d06a")

	rec := do(mux, http.MethodPost, "/shorten", "application/json; charset=utf-8", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"short_url":"http://localhost:8080/c984d06a"}`, rec.Body.String())
}

func TestShorten_contentType(t *testing.T) {
	_, mux := newTestMux(t, nil)

	for _, ct := range []string{"", "text/plain", "application/x-www-form-urlencoded", "application/+json", "text/vnd.api+json"} {
		rec := do(mux, http.MethodPost, "/shorten", ct, `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, ct)
		require.JSONEq(t, `{"error":"Content-Type must be application/json"}`, rec.Body.String(), ct)
	}
}

func TestShorten_jsonSuffixContentType(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	link := &domain.Link{Code: "c984d06a", URL: "https://example.com"}
	svc.EXPECT().Shorten(gomock.Any(), "https://example.com").Return(link, nil).Times(2)
	svc.EXPECT().ShortURL(domain.ShortCode("c984d06a")).Return("http://sho.rt/c984d06a").Times(2)

	for _, ct := range []string{"application/vnd.api+json", "Application/Merge-Patch+JSON; charset=utf-8"} {
		rec := do(mux, http.MethodPost, "/shorten", ct, `{"url":"https://example.com"}`)
		require.Equal(t, http.StatusOK, rec.Code, ct)
	}
}

func TestShorten_invalidJSON(t *testing.T) {
	_, mux := newTestMux(t, nil)

	for _, body := range []string{
		`{"url":`,
		`{"url":"https://example.com"}garbage`,
		`{"url":"https://example.com"}{"url":"https://other.com"}`,
		`{"url":"https://example.com"} null`,
	} {
		rec := do(mux, http.MethodPost, "/shorten", "application/json", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.JSONEq(t, `{"error":"invalid JSON body"}`, rec.Body.String(), body)
	}
}

func TestShorten_trailingWhitespace(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	svc.EXPECT().Shorten(gomock.Any(), "https://example.com").
		Return(&domain.Link{Code: "c984d06a", URL: "https://example.com"}, nil)
	svc.EXPECT().ShortURL(gomock.Any()).Return("http://sho.rt/c984d06a")

	rec := do(mux, http.MethodPost, "/shorten", "application/json", "{\"url\":\"https://example.com\"}\n")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestShorten_missingURL(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	svc.EXPECT().Shorten(gomock.Any(), "").Return(nil, serrors.With(serrors.ErrBadRequest, "Missing URL")).Times(3)

	for _, body := range []string{`{}`, `{"url":null}`, `{"url":42}`} {
		rec := do(mux, http.MethodPost, "/shorten", "application/json", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.JSONEq(t, `{"error":"Missing URL"}`, rec.Body.String(), body)
	}
}

func TestShorten_errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"invalid url", serrors.With(serrors.ErrBadRequest, "invalid url"), http.StatusBadRequest, `{"error":"invalid url"}`},
		{"conflict", serrors.With(serrors.ErrConflict, "code taken"), http.StatusConflict, `{"error":"code taken"}`},
		{"internal", errors.New("db exploded"), http.StatusInternalServerError, `{"error":"internal error"}`},
		{"unavailable without message", serrors.KindOnly(serrors.ErrUnavailable), http.StatusServiceUnavailable, `{"error":"Service Unavailable"}`},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, `{"error":"request timed out"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newTestMux(t, nil)
			svc.EXPECT().Shorten(gomock.Any(), "https://example.com").Return(nil, tt.err)

			rec := do(mux, http.MethodPost, "/shorten", "application/json", `{"url":"https://example.com"}`)
			require.Equal(t, tt.status, rec.Code)
			require.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestRedirect(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	svc.EXPECT().Resolve(gomock.Any(), domain.ShortCode("c984d06a")).
		Return(&domain.Link{Code: "c984d06a", URL: "https://example.com"}, nil)
	svc.EXPECT().Resolve(gomock.Any(), domain.ShortCode("missing0")).
		Return(nil, serrors.With(serrors.ErrNotFound, "Not found"))

	rec := do(mux, http.MethodGet, "/c984d06a", "", "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "https://example.com", rec.Header().Get("Location"))

	rec = do(mux, http.MethodGet, "/missing0", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	svc.EXPECT().Stats(gomock.Any(), domain.ShortCode("c984d06a")).
		Return(&domain.Link{Code: "c984d06a", URL: "https://example.com", Clicks: 12, CreatedAt: created}, nil)
	svc.EXPECT().ShortURL(domain.ShortCode("c984d06a")).Return("http://sho.rt/c984d06a")

	rec := do(mux, http.MethodGet, "/stats/c984d06a", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"code":"c984d06a",
		"url":"https://example.com",
		"short_url":"http://sho.rt/c984d06a",
		"clicks":12,
		"created_at":"2025-03-04T05:06:07Z"
	}`, rec.Body.String())
}

func TestPing(t *testing.T) {
	svc, mux := newTestMux(t, nil)

	svc.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := do(mux, http.MethodGet, "/ping", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	svc.EXPECT().Ping(gomock.Any()).Return(serrors.KindOnly(serrors.ErrUnavailable))
	rec = do(mux, http.MethodGet, "/ping", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusForKind(t *testing.T) {
	require.Equal(t, http.StatusNotFound, linkhandler.StatusForKind(serrors.ErrNotFound))
	require.Equal(t, http.StatusTooManyRequests, linkhandler.StatusForKind(serrors.ErrRateLimited))
	require.Equal(t, http.StatusInternalServerError, linkhandler.StatusForKind(nil))
	require.Equal(t, http.StatusInternalServerError, linkhandler.StatusForKind(serrors.ErrInternal))
}
