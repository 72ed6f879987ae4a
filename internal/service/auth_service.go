package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"psymetric/internal/domain"
	"psymetric/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService registra usuarios y emite pares de tokens.
type AuthService struct {
	users repository.UserRepository
	jwt   *JWTService
}

func NewAuthService(users repository.UserRepository, jwt *JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Signup crea la cuenta y devuelve al usuario ya autenticado.
func (s *AuthService) Signup(ctx context.Context, email, password, displayName string) (domain.User, TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return domain.User{}, TokenPair{}, ErrInvalidCredentials
	}
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.User{}, TokenPair{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, TokenPair{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, TokenPair{}, err
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, TokenPair{}, err
	}
	pair, err := s.jwt.GeneratePair(user)
	if err != nil {
		return domain.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// Login valida credenciales. Email inexistente y password incorrecta
// devuelven el mismo error para no filtrar cuáles cuentas existen.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, TokenPair{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.jwt.GeneratePair(user)
	if err != nil {
		return domain.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rota el refresh token y devuelve un par nuevo.
func (s *AuthService) Refresh(refreshToken string) (TokenPair, error) {
	return s.jwt.RefreshPair(refreshToken)
}

// Logout revoca el refresh token actual.
func (s *AuthService) Logout(refreshToken string) error {
	return s.jwt.RevokeRefresh(refreshToken)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
