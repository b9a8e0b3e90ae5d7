package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/crypto"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/mock"
	"github.com/nitesh01487/natours/models"
)

func testAppConfig() config.App {
	return config.App{
		Env:           config.EnvDevelopment,
		TokenSignKey:  "test-secret",
		TokenIssuer:   "natours",
		TokenDuration: time.Hour,
		ResetTokenTTL: 10 * time.Minute,
		PublicURL:     "https://natours.test/",
	}
}

func newTestTokenService(users *fakeUserRepository) *tokenService {
	return NewTokenService(users, crypto.NewResetTokenGenerator(0), testAppConfig(), logger.Nop()).(*tokenService)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	users := &fakeUserRepository{
		findActiveByIDFn: func(_ context.Context, id int64) (models.User, error) {
			return models.User{ID: id, Name: "Ann", Active: true}, nil
		},
	}
	svc := newTestTokenService(users)

	token, err := svc.Issue(context.Background(), models.User{ID: 42})
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.UserID)

	user, err := svc.Verify(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Ann", user.Name)
}

func TestTokenService_Issue_MissingKey(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenSignKey = ""
	svc := NewTokenService(&fakeUserRepository{}, crypto.NewResetTokenGenerator(0), cfg, logger.Nop())

	_, err := svc.Issue(context.Background(), models.User{ID: 1})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService(&fakeUserRepository{})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(context.Background(), models.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
	assert.Equal(t, "Your token has expired! Please log in again.", apperr.Message(err))
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := newTestTokenService(&fakeUserRepository{})

	_, err := svc.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	status, ok := apperr.Status(err)
	require.True(t, ok)
	assert.Equal(t, 401, status)
}

func TestTokenService_Verify_UserGone(t *testing.T) {
	users := &fakeUserRepository{
		findActiveByIDFn: func(context.Context, int64) (models.User, error) {
			return models.User{}, apperr.NotFound("user")
		},
	}
	svc := newTestTokenService(users)

	token, err := svc.Issue(context.Background(), models.User{ID: 7})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, apperr.ErrUserDeleted)
}

func TestTokenService_Verify_PasswordChangedAfterIssue(t *testing.T) {
	issued := time.Now().Add(-time.Minute)

	tests := []struct {
		name    string
		changed time.Duration
		wantErr error
	}{
		{name: "changed a minute later", changed: time.Minute, wantErr: apperr.ErrPasswordChanged},
		{name: "changed under two seconds later", changed: 1500 * time.Millisecond, wantErr: apperr.ErrPasswordChanged},
		{name: "changed within the same second", changed: 300 * time.Millisecond, wantErr: apperr.ErrPasswordChanged},
		{name: "changed at issue time", changed: 0},
		{name: "changed before issue", changed: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := issued.Add(tt.changed)
			users := &fakeUserRepository{
				findActiveByIDFn: func(_ context.Context, id int64) (models.User, error) {
					return models.User{ID: id, PasswordChangedAt: &changed}, nil
				},
			}
			svc := newTestTokenService(users)
			svc.now = func() time.Time { return issued }

			token, err := svc.Issue(context.Background(), models.User{ID: 7})
			require.NoError(t, err)

			_, err = svc.Verify(context.Background(), token.SignedString)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTokenService_Verify_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	users := &fakeUserRepository{
		findActiveByIDFn: func(context.Context, int64) (models.User, error) {
			return models.User{}, boom
		},
	}
	svc := newTestTokenService(users)

	token, err := svc.Issue(context.Background(), models.User{ID: 7})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, boom)
	_, ok := apperr.Status(err)
	assert.False(t, ok)
}

func TestTokenService_CreateResetToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockResetTokenGenerator(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(10 * time.Minute)
	gen.EXPECT().Generate(now).Return("plain", "digest", expires, nil)

	var storedDigest string
	var storedExpiry *time.Time
	users := &fakeUserRepository{
		setResetTokenFn: func(_ context.Context, id int64, digest string, expiresAt *time.Time) error {
			assert.Equal(t, int64(3), id)
			storedDigest, storedExpiry = digest, expiresAt
			return nil
		},
	}

	svc := NewTokenService(users, gen, testAppConfig(), logger.Nop()).(*tokenService)
	svc.now = func() time.Time { return now }

	plaintext, err := svc.CreateResetToken(context.Background(), models.User{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "plain", plaintext)
	assert.Equal(t, "digest", storedDigest)
	require.NotNil(t, storedExpiry)
	assert.True(t, storedExpiry.Equal(expires))
}

func TestTokenService_ClearResetToken(t *testing.T) {
	called := false
	users := &fakeUserRepository{
		setResetTokenFn: func(_ context.Context, id int64, digest string, expiresAt *time.Time) error {
			called = true
			assert.Empty(t, digest)
			assert.Nil(t, expiresAt)
			return nil
		},
	}

	require.NoError(t, newTestTokenService(users).ClearResetToken(context.Background(), 3))
	assert.True(t, called)
}

func TestTokenService_ConsumeResetToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockResetTokenGenerator(ctrl)
	gen.EXPECT().Digest("plain").Return("digest").Times(2)

	consumed := false
	users := &fakeUserRepository{
		consumeResetTokenFn: func(_ context.Context, digest string, _ time.Time) (models.User, error) {
			if digest != "digest" || consumed {
				return models.User{}, apperr.NotFound("user")
			}
			consumed = true
			return models.User{ID: 9}, nil
		},
	}
	svc := NewTokenService(users, gen, testAppConfig(), logger.Nop())

	user, err := svc.ConsumeResetToken(context.Background(), "plain")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)

	_, err = svc.ConsumeResetToken(context.Background(), "plain")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
}

func TestTokenService_ConsumeResetToken_Empty(t *testing.T) {
	_, err := newTestTokenService(&fakeUserRepository{}).ConsumeResetToken(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
}
