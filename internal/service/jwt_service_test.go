package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"psymetric/internal/domain"
)

func newTestJWT(secret string) *JWTService {
	return NewJWTServiceWithStore(secret, 10*time.Minute, time.Hour, NewMemoryRefreshTokenStore())
}

var jwtTestUser = domain.User{
	ID:          "user-77",
	Email:       "ana@example.com",
	DisplayName: "Ana",
	CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWT("s3cret")

	pair, err := svc.GeneratePair(jwtTestUser)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.ExpiresIn != 600 {
		t.Fatalf("expected expires_in 600, got %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "user-77" || claims.Email != "ana@example.com" || claims.DisplayName != "Ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RefreshIsSingleUse(t *testing.T) {
	svc := newTestJWT("s3cret")

	pair, err := svc.GeneratePair(jwtTestUser)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	rotated, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a fresh pair, got %+v", rotated)
	}
	if _, err := svc.ParseAccessToken(rotated.AccessToken); err != nil {
		t.Fatalf("parse rotated access: %v", err)
	}

	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected spent refresh token rejected, got %v", err)
	}
}

func TestJWTService_RevokeRefresh(t *testing.T) {
	svc := newTestJWT("s3cret")

	pair, err := svc.GeneratePair(jwtTestUser)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke refresh: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected refresh after revoke rejected, got %v", err)
	}
}

func TestJWTService_RejectsTokenMisuse(t *testing.T) {
	svc := newTestJWT("s3cret")
	pair, err := svc.GeneratePair(jwtTestUser)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := svc.RefreshPair(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected access token rejected in refresh flow, got %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected refresh token rejected as access, got %v", err)
	}
	if _, err := svc.ParseAccessToken(""); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected empty token rejected, got %v", err)
	}

	empty := newTestJWT("")
	if _, err := empty.GeneratePair(jwtTestUser); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected empty secret rejected, got %v", err)
	}
}

func forgedToken(t *testing.T, secret, issuer string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:    "user-77",
		Email:     "ana@example.com",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "user-77",
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTService_RejectsForgedAndExpiredTokens(t *testing.T) {
	svc := newTestJWT("s3cret")
	future := time.Now().UTC().Add(10 * time.Minute)

	wrongIssuer := forgedToken(t, "s3cret", "someone-else", future)
	if _, err := svc.ParseAccessToken(wrongIssuer); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected wrong issuer rejected, got %v", err)
	}

	wrongSecret := forgedToken(t, "other-secret", "psymetric", future)
	if _, err := svc.ParseAccessToken(wrongSecret); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected wrong signature rejected, got %v", err)
	}

	expired := forgedToken(t, "s3cret", "psymetric", time.Now().UTC().Add(-time.Minute))
	if _, err := svc.ParseAccessToken(expired); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}
