package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/port"
	"healthmon/internal/session"
)

// Claims represents the JWT claims. SessionID names the persisted session
// record the token is bound to.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID       `json:"user_id"`
	SessionID string          `json:"sid"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User   *domain.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	Authenticate(ctx context.Context, claims *Claims) (*domain.User, error)
	Logout(ctx context.Context, claims *Claims) error
}

type authService struct {
	users      port.UserRepository
	store      port.SessionStore
	sessionKey string
	cfg        config.JWTConfig
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService implementation. Sessions are
// persisted in store under "<sessionKey>:<session id>".
func NewAuthService(
	users port.UserRepository,
	store port.SessionStore,
	sessionKey string,
	cfg config.JWTConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:      users,
		store:      store,
		sessionKey: sessionKey,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *authService) session(sid string) *session.Session {
	return session.New(s.sessionKey+":"+sid, s.store, s.users, s.logger)
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	sid := uuid.NewString()
	user, err := s.session(sid).Login(ctx, input.Email, input.Password, input.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Info("login rejected", zap.String("email", input.Email), zap.String("role", string(input.Role)))
			return nil, err
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	tokens, err := s.generateTokenPair(user, sid)
	if err != nil {
		return nil, err
	}
	s.logger.Info("login succeeded", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return &LoginResult{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.Authenticate(ctx, claims)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(user, claims.SessionID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

// Authenticate restores the session named by claims. A token whose session
// was logged out or whose record no longer matches is rejected.
func (s *authService) Authenticate(ctx context.Context, claims *Claims) (*domain.User, error) {
	if claims.SessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, ok := s.session(claims.SessionID).Restore(ctx)
	if !ok || user.ID != claims.UserID {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.session(claims.SessionID).Logout(ctx); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	s.logger.Info("logout", zap.String("user_id", claims.UserID.String()))
	return nil
}

func (s *authService) generateTokenPair(user *domain.User, sid string) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessTokenString, err := s.sign(user, sid, "access", now, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshTokenString, err := s.sign(user, sid, "refresh", now, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) sign(user *domain.User, sid, audience string, now, expiry time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
		},
		UserID:    user.ID,
		SessionID: sid,
		Email:     user.Email,
		Role:      user.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
