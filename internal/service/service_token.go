package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/crypto"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// tokenService is the concrete implementation of TokenService. Session
// tokens are HS256 JWTs; reset tokens are random values stored as sha256
// digests.
type tokenService struct {
	userRepository store.UserRepository
	resetTokens    crypto.ResetTokenGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewTokenService constructs a TokenService with the security parameters of
// cfg. All state is read-only after construction.
func NewTokenService(userRepository store.UserRepository, resetTokens crypto.ResetTokenGenerator, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		userRepository: userRepository,
		resetTokens:    resetTokens,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Issue signs a session token for user.
func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.ID, s.tokenDuration, s.tokenSignKey, s.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Int64("user_id", user.ID).Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify resolves tokenString to an active user.
//
// Returns:
//   - ErrTokenExpired or ErrTokenInvalid if the JWT does not verify.
//   - apperr.ErrUserDeleted if the user no longer exists or is inactive.
//   - apperr.ErrPasswordChanged if the password changed after issuance.
func (s *tokenService) Verify(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, ErrTokenExpired
		}
		return models.User{}, ErrTokenInvalid
	}

	user, err := s.userRepository.FindActiveByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrUserDeleted
		}
		return models.User{}, fmt.Errorf("error loading token owner: %w", err)
	}

	if user.ChangedPasswordAfter(token.IssuedAt) {
		log.Debug().Str("func", "*tokenService.Verify").Int64("user_id", user.ID).Msg("token predates password change")
		return models.User{}, apperr.ErrPasswordChanged
	}

	return user, nil
}

func (s *tokenService) CreateResetToken(ctx context.Context, user models.User) (string, error) {
	plaintext, digest, expiresAt, err := s.resetTokens.Generate(s.now())
	if err != nil {
		return "", fmt.Errorf("error generating reset token: %w", err)
	}

	if err = s.userRepository.SetResetToken(ctx, user.ID, digest, &expiresAt); err != nil {
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	return plaintext, nil
}

func (s *tokenService) ClearResetToken(ctx context.Context, userID int64) error {
	return s.userRepository.SetResetToken(ctx, userID, "", nil)
}

// ConsumeResetToken matches the digest of plaintext against pending,
// unexpired reset tokens. The store clears the match in the same statement,
// so a second call with the same plaintext fails.
func (s *tokenService) ConsumeResetToken(ctx context.Context, plaintext string) (models.User, error) {
	if plaintext == "" {
		return models.User{}, apperr.ErrInvalidOrExpiredToken
	}

	user, err := s.userRepository.ConsumeResetToken(ctx, s.resetTokens.Digest(plaintext), s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrInvalidOrExpiredToken
		}
		return models.User{}, fmt.Errorf("error consuming reset token: %w", err)
	}

	return user, nil
}
