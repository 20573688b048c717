package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"asso-portal/config"
	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
	"asso-portal/pkg/jwt"
	"asso-portal/pkg/redis"
)

// ── Auth business errors ──

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrEmailTaken          = errors.New("email already in use")
	ErrRegistrationClosed  = errors.New("registration is closed")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrWrongPassword       = errors.New("current password is incorrect")
)

// AuthService handles sessions and account credentials.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg      *config.Config
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	rdb      *redis.Client
	settings SettingsService
	logger   *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	settings SettingsService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		repo:     repo,
		jwtMgr:   jwtMgr,
		rdb:      rdb,
		settings: settings,
		logger:   logger,
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *authService) tokenPair(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role, user.IsActive)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Role, user.IsActive)
	if err != nil {
		s.logger.Error("failed to sign refresh token", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Password is checked before the active flag so a disabled account
	// gets a distinct error only when the credentials are right.
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.tokenPair(user)
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !s.settings.IsRegistrationOpen(ctx) {
		return nil, ErrRegistrationClosed
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleMember,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("member registered", zap.String("user_id", user.ID))
	return &dto.RegisterResponse{ID: user.ID, Email: user.Email}, nil
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed, allowing refresh", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefreshToken
		}
	}

	// Role and active flag are re-read so a demotion or deactivation takes
	// effect at the next refresh even with a valid token in hand.
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.tokenPair(user)
}

// ────────────────────── Logout ──────────────────────

// Logout blacklists the current access token until its natural expiry.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		// An expired or invalid token needs no blacklisting.
		return nil
	}

	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("failed to blacklist token", zap.Error(err))
	}
	return nil
}

// ────────────────────── Change password ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to look up user", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to update password", zap.Error(err))
		return err
	}
	return nil
}
