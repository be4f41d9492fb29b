package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"cryptoapp/src/clients/mail"
	"cryptoapp/src/models"
	"cryptoapp/src/repositories"
	"cryptoapp/src/schemas"
	"cryptoapp/src/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ResetCodeLength   = 6
	ResetCodeLifetime = 10 * time.Minute

	invalidCredentialsMessage = "Invalid email or password."
	invalidResetMessage       = "Invalid username or code."
)

type UserServiceI interface {
	Register(ctx context.Context, req schemas.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req schemas.LoginRequest) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ForgotPassword(ctx context.Context, username string) error
	ChangePassword(ctx context.Context, req schemas.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, user *models.User) error
}

type UserServiceConfig struct {
	ServiceEmail string
	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

type UserService struct {
	userRepository      repositories.UserRepository
	resetCodeRepository repositories.ResetCodeRepository
	mailSender          mail.Sender
	cfg                 UserServiceConfig
	clock               utils.Clock
}

func NewUserService(
	userRepository repositories.UserRepository,
	resetCodeRepository repositories.ResetCodeRepository,
	mailSender mail.Sender,
	cfg UserServiceConfig,
	clock utils.Clock,
) *UserService {
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = bcrypt.DefaultCost
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &UserService{
		userRepository:      userRepository,
		resetCodeRepository: resetCodeRepository,
		mailSender:          mailSender,
		cfg:                 cfg,
		clock:               clock,
	}
}

func (s *UserService) Register(ctx context.Context, req schemas.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	exists, err := s.userRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict("Email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.PasswordCost)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	user := &models.User{
		ID:         uuid.New(),
		Username:   req.Username,
		Password:   string(hash),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.Conflict("Email already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req schemas.LoginRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.userRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.Unauthorized(invalidCredentialsMessage)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized(invalidCredentialsMessage)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("User not found.")
	}
	return user, nil
}

// ForgotPassword stores a fresh reset code and mails it. Unknown usernames are
// ignored so that callers cannot probe which accounts exist.
func (s *UserService) ForgotPassword(ctx context.Context, username string) error {
	user, err := s.userRepository.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := generateResetCode(ResetCodeLength)
	if err != nil {
		return err
	}
	resetCode := &models.ResetPasswordCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(ResetCodeLifetime),
	}
	if err := s.resetCodeRepository.Upsert(ctx, resetCode); err != nil {
		return err
	}

	err = s.mailSender.Send(ctx, mail.SendMailRequest{
		To:      user.Username,
		From:    s.cfg.ServiceEmail,
		Subject: "Password Reset Code",
		Text:    resetPasswordMailText(user.FirstName, code),
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("failed to send password reset mail")
	}
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, req schemas.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := s.userRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.BadRequest(invalidResetMessage)
	}
	resetCode, err := s.resetCodeRepository.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if resetCode == nil || !strings.EqualFold(resetCode.Code, req.Code) || resetCode.Expired(s.clock.Now()) {
		return utils.BadRequest(invalidResetMessage)
	}
	if req.NewPassword != req.VerifyNewPassword {
		return utils.BadRequest("New passwords do not match.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.PasswordCost)
	if err != nil {
		return err
	}
	if err := s.userRepository.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := s.resetCodeRepository.Delete(ctx, user.ID); err != nil {
		return err
	}

	err = s.mailSender.Send(ctx, mail.SendMailRequest{
		To:      user.Username,
		From:    s.cfg.ServiceEmail,
		Subject: "Password Changed Successfully",
		Text:    "<p>Your password has been changed successfully. If you did not change your password, your email may be compromised.</p>",
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("failed to send password change confirmation mail")
	}
	return nil
}

func (s *UserService) DeleteAccount(ctx context.Context, user *models.User) error {
	if user == nil {
		return utils.BadRequest("User cannot be null.")
	}
	existing, err := s.userRepository.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NotFound("User not found.")
	}
	return s.userRepository.Delete(ctx, user.ID)
}

func generateResetCode(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(26))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('A' + n.Int64()))
	}
	return sb.String(), nil
}

func resetPasswordMailText(firstName, code string) string {
	return fmt.Sprintf(`<h1>Reset Password</h1>
<p>Hi %s,</p>
<p>You have requested to reset your password for your account at Crypto App.</p>
<p>Your password reset code is:</p>
<h2>%s</h2>
<p>This code will expire in 10 minutes. If you did not request a password reset, please ignore this email.</p>
<p>Thank you,<br/>The Crypto App Team</p>
`, firstName, code)
}
