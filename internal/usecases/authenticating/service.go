package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenValidator é o que o middleware de autenticação precisa.
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Service emite e valida os tokens HS256 usados pelos painéis e pelos jobs internos.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg config.Auth) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}, nil
}

// IssueToken gera um token para o usuário com o papel informado.
func (s *Service) IssueToken(userID int, name, email string, roleID int) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID:     userID,
		UserName:   name,
		UserEmail:  email,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
