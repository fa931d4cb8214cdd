package usecase

import (
	"context"
	"fmt"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/mailer"
	"media-review/pkg/token"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Manager
	mail   mailer.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	mail mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
		config: config,
		log:    log,
	}
}

// SignUp finds or creates the user for the username/email pair, then issues
// and emails a fresh confirmation code. Repeating the request with the same
// pair re-issues a code.
func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find or create user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}

	if user != nil {
		// Existing username must carry the same email
		if user.Email != req.Email {
			return nil, fmt.Errorf("validation failed: username already registered with another email")
		}
	} else {
		// Email must not belong to another username
		existing, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to check email")
		}
		if existing != nil {
			return nil, fmt.Errorf("validation failed: email already registered with another username")
		}

		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: req.Username,
			Email:    req.Email,
			Role:     entity.RoleUser,
			IsActive: true,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("failed to create account")
		}

		s.log.Info("User registered",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username))
	}

	// 3. Issue confirmation code
	if err := s.issueConfirmationCode(ctx, user); err != nil {
		return nil, err
	}

	return &response.SignUpResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Token exchanges a valid confirmation code for an access token
func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	// 3. Check confirmation code against the stored hash
	code, err := s.repo.Confirmation.FindValidByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to verify confirmation code")
	}
	if code == nil || !utils.CheckCodeHash(req.ConfirmationCode, code.CodeHash) {
		s.log.Warn("Invalid confirmation code", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid confirmation code")
	}

	// 4. Single use
	if err := s.repo.Confirmation.MarkAsUsed(ctx, code.ID); err != nil {
		s.log.Warn("Failed to mark confirmation code as used",
			zap.Error(err), zap.String("code_id", code.ID.String()))
		// Continue anyway
	}

	// 5. Issue access token
	accessToken, expiresAt, err := s.tokens.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) issueConfirmationCode(ctx context.Context, user *entity.User) error {
	plain := utils.GenerateConfirmationCode(s.config.Confirmation.Length)

	hash, err := utils.HashCode(plain)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return fmt.Errorf("failed to generate confirmation code")
	}

	// Earlier codes stop working as soon as a new one is issued
	if err := s.repo.Confirmation.InvalidateForUser(ctx, user.ID); err != nil {
		s.log.Warn("Failed to invalidate earlier codes",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	code := &entity.ConfirmationCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(time.Duration(s.config.Confirmation.ExpiryMinutes) * time.Minute),
		IsUsed:    false,
	}

	if err := s.repo.Confirmation.Create(ctx, code); err != nil {
		s.log.Error("Failed to save confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to generate confirmation code")
	}

	body := fmt.Sprintf("Your confirmation code is %s. It expires in %d minutes.",
		plain, s.config.Confirmation.ExpiryMinutes)

	// A failed delivery is not fatal: the row exists and re-signup re-issues
	if err := s.mail.Send(user.Email, "Confirmation code", body); err != nil {
		s.log.Error("Failed to send confirmation code",
			zap.Error(err), zap.String("email", user.Email))
	}

	s.log.Info("Confirmation code issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", code.ExpiresAt))

	return nil
}
