package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── User business errors ──

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrSelfDemote     = errors.New("cannot change your own role")
	ErrUserHasRecords = errors.New("user still owns orders or registrations")
)

// UserService handles member administration and self-service profiles.
type UserService interface {
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, id, role, callerID string) error
	SetActive(ctx context.Context, id string, active bool, callerID string) error
	Delete(ctx context.Context, id, callerID string) error
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── Admin ──────────────────────

func (s *userService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, total, nil
}

func (s *userService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, id, role, callerID string) error {
	// Admins cannot demote themselves; that path locks the last admin out.
	if id == callerID {
		return ErrSelfDemote
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	user.Role = role
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to update role", zap.Error(err))
		return err
	}
	s.logger.Info("user role changed", zap.String("user_id", id), zap.String("role", role))
	return nil
}

func (s *userService) SetActive(ctx context.Context, id string, active bool, callerID string) error {
	if id == callerID && !active {
		return ErrSelfDemote
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = active
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to update active flag", zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}

	orders, registrations, err := s.repo.User.CountOwnership(ctx, id)
	if err != nil {
		s.logger.Error("failed to count user records", zap.Error(err))
		return err
	}
	if orders > 0 || registrations > 0 {
		return ErrUserHasRecords
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.Error(err))
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// ────────────────────── Self service ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to look up email", zap.Error(err))
			return nil, err
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}
