package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"electrotrack/internal/config"
	domainAudit "electrotrack/internal/domain/audit"
	domainUser "electrotrack/internal/domain/user"
	"electrotrack/internal/logger"
	"electrotrack/internal/usecase/audit"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

// Service implements authentication and account management.
type Service struct {
	userRepo domainUser.Repository
	recorder *audit.Recorder
	config   *config.Config
}

func NewService(userRepo domainUser.Repository, recorder *audit.Recorder, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		recorder: recorder,
		config:   cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown username",
				zap.String("username", username),
				zap.String("event", "login_failed_unknown_user"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, domainUser.ErrUserInactive
	}

	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, expiresAt, err := utils.GenerateAccessToken(user.ID, user.Username, string(user.Role), s.config.JWT.Secret, ttl)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Error("Failed to update last login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        ToUserResponse(user),
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest, actor string) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Username:       strings.ToLower(req.Username),
		FullName:       utils.SanitizeString(req.FullName),
		PasswordHashed: hashedPassword,
		Role:           domainUser.Role(req.Role),
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("User creation with existing username",
				zap.String("username", user.Username),
				zap.String("event", "user_create_failed_duplicate"),
			)
		}
		return nil, err
	}

	logger.Info("User created successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("actor", actor),
		zap.String("event", "user_created"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityUser, user.ID, domainAudit.ActionCreate, actor, map[string]interface{}{
		"username": user.Username,
		"role":     string(user.Role),
	})

	return ToUserResponse(user), nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return responses, nil
}

// DeactivateUser disables an account. Users are never deleted because audit
// entries and loans keep their username.
func (s *Service) DeactivateUser(ctx context.Context, userID, currentUserID uuid.UUID, actor string) error {
	if userID == currentUserID {
		return domainUser.ErrSelfDeactivation
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deactivated",
		zap.String("user_id", userID.String()),
		zap.String("actor", actor),
		zap.String("event", "user_deactivated"),
	)
	s.recorder.Changed(ctx, domainAudit.EntityUser, userID, domainAudit.ActionDeactivate, actor, nil)

	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(err)
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

// BootstrapAdmin creates the first admin account when the users table is
// empty and credentials are configured. It reports whether an account was created.
func (s *Service) BootstrapAdmin(ctx context.Context, admin config.AdminConfig) (bool, error) {
	if admin.Username == "" || admin.Password == "" {
		return false, nil
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Username:       strings.ToLower(admin.Username),
		FullName:       admin.FullName,
		PasswordHashed: hashedPassword,
		Role:           domainUser.RoleAdmin,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, err
	}

	logger.Info("Bootstrap admin account created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("event", "admin_bootstrapped"),
	)

	return true, nil
}
