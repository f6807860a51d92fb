package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/admin"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/auth"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type AuthServiceImpl struct {
	adminRepo  admin.AdminRepository
	jwtService jwt.Service
}

func NewAuthService(adminRepo admin.AdminRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	adminUser, err := a.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(adminUser.ID, adminUser.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("Admin logged in", "admin_id", adminUser.ID, "username", adminUser.Username)

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            "Bearer",
		Username:             adminUser.Username,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	if a.jwtService.IsTokenRevoked(token) {
		return auth.ErrTokenRevoked
	}
	a.jwtService.RevokeToken(token)
	return nil
}

// HashPassword is used when seeding admin accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
