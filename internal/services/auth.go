package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"friendsnap-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const jwtExpDays = 7

// AuthService handles registration, login and token validation.
type AuthService struct {
	users     UserStore
	jwtSecret string
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Register creates a new user. Nicknames are case-insensitive unique; the
// original casing is kept as display name.
func (s *AuthService) Register(ctx context.Context, nickname, avatarURL, password string) (*AuthResult, error) {
	normalized := strings.ToLower(nickname)

	existing, err := s.users.GetByNickname(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check nickname: %w", err)
	}
	if existing != nil {
		return nil, ErrNicknameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Nickname:     normalized,
		DisplayName:  nickname,
		AvatarURL:    avatarURL,
		PasswordHash: string(hash),
		BlockedUsers: []string{},
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// Login verifies the credentials and issues a fresh token. Wrong nickname
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, nickname, password string) (*AuthResult, error) {
	user, err := s.users.GetByNickname(ctx, strings.ToLower(nickname))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// CurrentUser resolves the authenticated user's public summary.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	summary := user.Summary()
	return &summary, nil
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthorized
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", ErrUnauthorized
	}

	return userID, nil
}

// RegisterPushToken stores the device token used for push notifications.
func (s *AuthService) RegisterPushToken(ctx context.Context, userID string, pushToken *string) error {
	return s.users.UpdatePushToken(ctx, userID, pushToken)
}
