package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/config"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrAccountInactive     = errors.New("Your account is inactive, please contact the administrator")
	ErrIPMismatch          = errors.New("IP address does not match. Please contact the administrator to update it.")
	ErrMACMismatch         = errors.New("MAC address does not match. Please contact the administrator to update it.")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInvalidToken        = errors.New("invalid token")
)

const tokenIssuer = "content-multiplier-backend"

type AuthService struct {
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	loginHistoryRepo *repository.LoginHistoryRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	logrus.Infof("Access token TTL: %s", cfg.AccessTokenTTL)
	logrus.Infof("Refresh token TTL: %s", cfg.RefreshTokenTTL)

	return &AuthService{
		userRepo:         repository.NewUserRepository(db),
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		loginHistoryRepo: repository.NewLoginHistoryRepository(db),
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		now:              time.Now,
	}
}

// Register creates a user with the default role
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepo.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, utils.NewValidationError("Email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          models.RoleUser,
		Status:        models.UserOffline,
		AccountStatus: models.AccountActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user, enforces the IP/MAC binding when enabled and
// records the login.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, meta models.LoginMetadata) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.AccountStatus == models.AccountInactive {
		return nil, ErrAccountInactive
	}

	if user.CheckIPMAC {
		if user.IPAddress != "" && meta.IPAddress != user.IPAddress {
			return nil, ErrIPMismatch
		}
		if user.MACAddress != "" && meta.MACAddress != "" && meta.MACAddress != user.MACAddress {
			return nil, ErrMACMismatch
		}
	}

	now := s.now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, meta.IPAddress, meta.MACAddress, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	if err := s.loginHistoryRepo.Upsert(ctx, user.ID, meta, now); err != nil {
		return nil, fmt.Errorf("failed to record login history: %w", err)
	}

	user.IPAddress = meta.IPAddress
	user.MACAddress = meta.MACAddress
	user.Status = models.UserOnline
	user.LastLoginAt = &now

	return s.generateAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenStr string) (*models.AuthResponse, error) {
	refreshToken, err := s.refreshTokenRepo.GetActive(ctx, refreshTokenStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if refreshToken == nil {
		return nil, ErrInvalidRefreshToken
	}

	if refreshToken.ExpiresAt.Before(s.now()) {
		if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenStr); err != nil {
			logrus.Warnf("Failed to revoke expired refresh token: %v", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}
	if user.AccountStatus == models.AccountInactive {
		return nil, ErrAccountInactive
	}

	if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenStr); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// Logout revokes one refresh token, or every session of the user when none
// is given, and marks the user offline.
func (s *AuthService) Logout(ctx context.Context, refreshTokenStr string, userID string) error {
	if refreshTokenStr != "" {
		if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenStr); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	} else {
		if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
			return fmt.Errorf("failed to increment token version: %w", err)
		}
		if err := s.refreshTokenRepo.RevokeAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to revoke all refresh tokens: %w", err)
		}
	}

	if err := s.userRepo.SetStatus(ctx, userID, models.UserOffline); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return nil
}

// GetCurrentUser returns the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User")
	}
	return user, nil
}

// ValidateToken validates a JWT access token against the stored user
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrInvalidToken)
	}
	if user.AccountStatus == models.AccountInactive {
		return nil, ErrAccountInactive
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, fmt.Errorf("%w: token version mismatch", ErrInvalidToken)
	}

	return &models.TokenInfo{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: claims.TokenVersion,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// EnsureAdminUser creates the configured admin account when it is missing.
// An empty password disables seeding.
func (s *AuthService) EnsureAdminUser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		logrus.Info("Admin seeding disabled (ADMIN_EMAIL or ADMIN_PASSWORD empty)")
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		Email:         normalizeEmail(email),
		PasswordHash:  string(hashedPassword),
		Role:          models.RoleAdmin,
		FullName:      "Administrator",
		Status:        models.UserOffline,
		AccountStatus: models.AccountActive,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.Infof("Admin user %s created", admin.Email)
	return nil
}

func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &models.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// generateRefreshToken creates a random opaque token and stores it
func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
		IsRevoked: false,
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
