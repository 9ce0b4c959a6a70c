package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"renal-calculator/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptyCredentials   = errors.New("login and password required")
)

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type Service struct {
	db      *gorm.DB
	secret  []byte
	ttl     time.Duration
	revoked Revoker
	now     func() time.Time
}

// NewService builds the account service. A nil revoker falls back to an
// in-process one.
func NewService(db *gorm.DB, secret string, ttl time.Duration, revoked Revoker) *Service {
	if revoked == nil {
		revoked = NewMemoryRevoker()
	}
	return &Service{
		db:      db,
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

func (s *Service) Register(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return ErrEmptyCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user = models.User{Login: login, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Authenticate checks the password and issues a signed token.
func (s *Service) Authenticate(ctx context.Context, login, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("login = ?", strings.TrimSpace(login)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	id, err := newTokenID()
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates signature, expiry and revocation.
func (s *Service) ParseToken(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, tokenStr)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke blocks tokenStr until it would have expired anyway.
func (s *Service) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := s.ParseToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, tokenStr, ttl)
}

func newTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
