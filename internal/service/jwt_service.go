package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"psymetric/internal/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

// Claims son los claims propios más los registrados. El tipo de token viaja
// en "typ" para que un refresh token nunca sirva como access token.
type Claims struct {
	UserID      string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	TokenType   string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// JWTService emite y valida pares de tokens HS256. Los refresh tokens son
// de un solo uso: su jti se registra en el store y se consume al rotar.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	store      RefreshTokenStore
}

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     "psymetric",
		store:      NewMemoryRefreshTokenStore(),
	}
}

func NewJWTServiceWithStore(secret string, accessTTL, refreshTTL time.Duration, store RefreshTokenStore) *JWTService {
	svc := NewJWTService(secret, accessTTL, refreshTTL)
	if store != nil {
		svc.store = store
	}
	return svc
}

// GeneratePair emite un access y un refresh token para el usuario y registra
// el jti del refresh en el store.
func (s *JWTService) GeneratePair(user domain.User) (TokenPair, error) {
	if len(s.secret) == 0 {
		return TokenPair{}, ErrJWTInvalid
	}

	now := time.Now().UTC()
	access, _, err := s.sign(user, now, tokenTypeAccess)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, jti, err := s.sign(user, now, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	if s.store != nil {
		if err := s.store.Store(jti, user.ID, s.refreshTTL); err != nil {
			return TokenPair{}, err
		}
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// RefreshPair rota el refresh token: lo consume y emite un par nuevo.
func (s *JWTService) RefreshPair(refreshToken string) (TokenPair, error) {
	claims, err := s.consumeRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return s.GeneratePair(domain.User{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	})
}

// RevokeRefresh invalida un refresh token sin emitir un par nuevo.
func (s *JWTService) RevokeRefresh(refreshToken string) error {
	claims, err := s.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return err
	}
	if claims.ID == "" || s.store == nil {
		return ErrJWTInvalid
	}
	return s.store.Revoke(claims.ID)
}

// ParseAccessToken valida un access token y devuelve sus claims.
func (s *JWTService) ParseAccessToken(accessToken string) (Claims, error) {
	return s.verify(accessToken, tokenTypeAccess)
}

// consumeRefresh valida el refresh token y gasta su jti en el store. Un jti
// ausente significa token ya usado o revocado.
func (s *JWTService) consumeRefresh(refreshToken string) (Claims, error) {
	claims, err := s.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return Claims{}, err
	}
	if claims.ID == "" || s.store == nil {
		return Claims{}, ErrJWTInvalid
	}
	ok, err := s.store.Exists(claims.ID)
	if err != nil || !ok {
		return Claims{}, ErrJWTInvalid
	}
	if err := s.store.Revoke(claims.ID); err != nil {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

// verify parsea el token, chequea firma y expiración y exige el tipo pedido.
func (s *JWTService) verify(tokenString, wantType string) (Claims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}

	if claims.TokenType != wantType {
		return Claims{}, ErrJWTInvalid
	}
	uid := strings.TrimSpace(claims.UserID)
	if uid == "" || uid != strings.TrimSpace(claims.Subject) {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(claims.Issuer) != s.issuer {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

// sign emite un token del tipo dado. Para refresh genera además el jti que
// el store va a registrar.
func (s *JWTService) sign(user domain.User, now time.Time, tokenType string) (string, string, error) {
	ttl := s.accessTTL
	jti := ""
	if tokenType == tokenTypeRefresh {
		ttl = s.refreshTTL
		jti = uuid.NewString()
	}

	claims := Claims{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, jti, err
}
