package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/solomonczyk/autoservice/internal/database/postgres"
	"github.com/solomonczyk/autoservice/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims — полезная нагрузка токена сотрудника. ShopID задаёт границу
// арендатора для всех последующих операций.
type Claims struct {
	UserID int64           `json:"user_id"`
	ShopID int64           `json:"shop_id"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo   repository.UserRepository
	secret     []byte
	expiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, expiration time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Login проверяет учетные данные сотрудника и выдает JWT
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, entity.ErrUserNotFound) {
		return "", entity.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", entity.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrUnauthorized
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		ShopID: user.ShopID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок токена и возвращает claims
func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, entity.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, entity.ErrUnauthorized
	}
	return claims, nil
}

// HashPassword хэширует пароль сотрудника для хранения
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
