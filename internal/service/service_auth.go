package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nitesh01487/natours/internal/adapter"
	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/crypto"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification and the password reset
// lifecycle, delegating token work to a TokenService.
type authService struct {
	userRepository store.UserRepository
	tokens         TokenService
	hasher         crypto.PasswordHasher
	mailer         adapter.Mailer
	validator      validators.Validator

	// publicURL prefixes links sent by email.
	publicURL string
	// resetTokenTTL is only used to phrase the reset email.
	resetTokenTTL time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, hasher crypto.PasswordHasher,
	mailer adapter.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		hasher:         hasher,
		mailer:         mailer,
		validator:      validators.NewUserValidator(),
		publicURL:      strings.TrimRight(cfg.PublicURL, "/"),
		resetTokenTTL:  cfg.ResetTokenTTL,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a regular user account and logs it in.
//
// The role is always [models.RoleUser]. A failing welcome email is logged
// and does not fail the signup.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("error hashing password")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	user, err := a.userRepository.Create(ctx, models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Photo:    req.Photo,
		Role:     models.RoleUser,
		Password: digest,
		Active:   true,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("user creation ended with error")
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err = a.mailer.Send(ctx, models.Email{
		Template: models.EmailTemplateWelcome,
		To:       user.Email,
		Subject:  "Welcome to the Natours Family!",
		Vars:     map[string]string{"firstName": firstName(user.Name), "url": a.publicURL + "/me"},
	}); err != nil {
		log.Err(err).Str("func", "*authService.Signup").Int64("user_id", user.ID).Msg("error sending welcome email")
	}

	return a.login(ctx, user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail with the same error.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	user, err := a.userRepository.FindActiveByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.AuthResult{}, apperr.ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, user.Password) {
		log.Info().Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.AuthResult{}, apperr.ErrInvalidCredentials
	}

	return a.login(ctx, user)
}

// ForgotPassword emails a reset link to the owner of req.Email. When the
// email cannot be sent the pending token is dropped again.
func (a *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	if !validators.IsEmail(req.Email) {
		return apperr.Validation(validators.FieldEmail, validators.MsgEmailInvalid)
	}

	user, err := a.userRepository.FindActiveByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return errNoUserWithEmail(nil)
		}
		return fmt.Errorf("user search by email failed: %w", err)
	}

	plaintext, err := a.tokens.CreateResetToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Int64("user_id", user.ID).Msg("error creating reset token")
		return err
	}

	err = a.mailer.Send(ctx, models.Email{
		Template: models.EmailTemplatePasswordReset,
		To:       user.Email,
		Subject:  fmt.Sprintf("Your password reset token (valid for only %d minutes)", int(a.resetTokenTTL.Minutes())),
		Vars: map[string]string{
			"firstName": firstName(user.Name),
			"url":       a.publicURL + "/api/v1/users/resetPassword/" + plaintext,
		},
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Int64("user_id", user.ID).Msg("error sending reset email")
		if clearErr := a.tokens.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Err(clearErr).Str("func", "*authService.ForgotPassword").Int64("user_id", user.ID).Msg("error clearing reset token")
		}
		return errEmailNotSent(err)
	}

	return nil
}

// ResetPassword replaces the password of the reset token's owner and logs
// them in. The new password is validated before the token is spent.
func (a *authService) ResetPassword(ctx context.Context, plaintext string, req models.ResetPasswordRequest) (models.AuthResult, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	user, err := a.tokens.ConsumeResetToken(ctx, plaintext)
	if err != nil {
		return models.AuthResult{}, err
	}

	return a.changePassword(ctx, user, req.Password)
}

// UpdatePassword replaces the password of a logged in user after checking
// the current one.
func (a *authService) UpdatePassword(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.AuthResult, error) {
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	current, err := a.userRepository.FindActiveByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.AuthResult{}, apperr.ErrUserDeleted
		}
		return models.AuthResult{}, fmt.Errorf("error loading user: %w", err)
	}

	if !a.hasher.Verify(req.PasswordCurrent, current.Password) {
		return models.AuthResult{}, ErrWrongPassword
	}

	return a.changePassword(ctx, current, req.Password)
}

func (a *authService) changePassword(ctx context.Context, user models.User, password string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	digest, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*authService.changePassword").Int64("user_id", user.ID).Msg("error hashing password")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	updated, err := a.userRepository.UpdatePassword(ctx, user.ID, digest, a.now())
	if err != nil {
		log.Err(err).Str("func", "*authService.changePassword").Int64("user_id", user.ID).Msg("error storing password")
		return models.AuthResult{}, fmt.Errorf("error storing password: %w", err)
	}

	return a.login(ctx, updated)
}

func (a *authService) login(ctx context.Context, user models.User) (models.AuthResult, error) {
	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{User: user, Token: token}, nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
