package linkhandler_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"shortener/internal/api/handler/linkhandler"
	"shortener/pkg/domain"
	"shortener/pkg/serrors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// helper to generate an RSA key pair and return the private key and PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func newSecHandlerForTest(t *testing.T, pubPEM string) *linkhandler.SecHandler {
	t.Helper()
	sh, err := linkhandler.NewSecHandler(&linkhandler.SecHandlerOptions{PublicKey: pubPEM})
	require.NoError(t, err, "NewSecHandler failed")
	require.NotNil(t, sh)

	return sh
}

func signJWT(tb testing.TB, method jwt.SigningMethod, key any, sub string, issuedAt time.Time, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString(key)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

func TestNewSecHandler_disabled(t *testing.T) {
	sh, err := linkhandler.NewSecHandler(nil)
	require.NoError(t, err)
	require.Nil(t, sh)

	sh, err = linkhandler.NewSecHandler(&linkhandler.SecHandlerOptions{})
	require.NoError(t, err)
	require.Nil(t, sh)
}

func TestNewSecHandler_badKey(t *testing.T) {
	_, err := linkhandler.NewSecHandler(&linkhandler.SecHandlerOptions{PublicKey: "not a pem"})
	require.Error(t, err)
}

func TestHandleBearerAuth_ValidToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)

	uid := uuid.New()
	now := time.Now()
	tkn := signJWT(t, jwt.SigningMethodRS256, priv, uid.String(), now, now.Add(time.Hour))

	ctx, err := sh.HandleBearerAuth(context.Background(), tkn)
	require.NoError(t, err)

	got, ok := ctx.Value(linkhandler.UserIDKey).(domain.UserID)
	require.True(t, ok, "userID missing from context")
	require.Equal(t, domain.UserID(uid), got)
}

func TestHandleBearerAuth_Rejects(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	otherPriv, _ := genRSAKeys(t)
	sh := newSecHandlerForTest(t, pubPEM)
	now := time.Now()

	tokens := map[string]string{
		"wrong key":       signJWT(t, jwt.SigningMethodRS256, otherPriv, uuid.NewString(), now, now.Add(time.Hour)),
		"expired":         signJWT(t, jwt.SigningMethodRS256, priv, uuid.NewString(), now.Add(-2*time.Hour), now.Add(-time.Hour)),
		"subject not uid": signJWT(t, jwt.SigningMethodRS256, priv, "alice", now, now.Add(time.Hour)),
		"hmac":            signJWT(t, jwt.SigningMethodHS256, []byte("secret"), uuid.NewString(), now, now.Add(time.Hour)),
		"garbage":         "not.a.jwt",
	}
	for name, tkn := range tokens {
		t.Run(name, func(t *testing.T) {
			_, err := sh.HandleBearerAuth(context.Background(), tkn)
			require.ErrorIs(t, err, serrors.ErrUnauthorized)
		})
	}
}

func TestShorten_requiresToken(t *testing.T) {
	priv, pubPEM := genRSAKeys(t)
	svc, mux := newTestMux(t, newSecHandlerForTest(t, pubPEM))

	// no token
	rec := do(mux, http.MethodPost, "/shorten", "application/json", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	// valid token
	svc.EXPECT().Shorten(gomock.Any(), "https://example.com").
		Return(&domain.Link{Code: "c984d06a", URL: "https://example.com"}, nil)
	svc.EXPECT().ShortURL(gomock.Any()).Return("http://sho.rt/c984d06a")

	now := time.Now()
	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signJWT(t, jwt.SigningMethodRS256, priv, uuid.NewString(), now, now.Add(time.Hour)))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// redirects stay public
	svc.EXPECT().Resolve(gomock.Any(), domain.ShortCode("c984d06a")).
		Return(&domain.Link{Code: "c984d06a", URL: "https://example.com"}, nil)
	rec = do(mux, http.MethodGet, "/c984d06a", "", "")
	require.Equal(t, http.StatusFound, rec.Code)
}
