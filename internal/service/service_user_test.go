package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

func TestUserService_UpdateMe(t *testing.T) {
	var got models.UserUpdate
	users := &fakeUserRepository{
		updateFn: func(_ context.Context, id int64, update models.UserUpdate) (models.User, error) {
			got = update
			return models.User{ID: id, Name: *update.Name}, nil
		},
	}
	svc := NewUserService(users, logger.Nop())

	user, err := svc.UpdateMe(context.Background(), 3, models.UpdateMeRequest{Name: ptr("Jonas S.")})
	require.NoError(t, err)
	assert.Equal(t, "Jonas S.", user.Name)
	assert.Nil(t, got.Role)
	assert.Nil(t, got.Active)
}

func TestUserService_UpdateMe_RejectsPassword(t *testing.T) {
	users := &fakeUserRepository{
		updateFn: func(context.Context, int64, models.UserUpdate) (models.User, error) {
			t.Fatal("update must not run")
			return models.User{}, nil
		},
	}
	svc := NewUserService(users, logger.Nop())

	_, err := svc.UpdateMe(context.Background(), 3, models.UpdateMeRequest{Password: ptr("newpass123")})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, validators.MsgPasswordNotUpdated, vErr.Message)
}

func TestUserService_DeleteMe(t *testing.T) {
	var got models.UserUpdate
	users := &fakeUserRepository{
		updateFn: func(_ context.Context, id int64, update models.UserUpdate) (models.User, error) {
			got = update
			return models.User{ID: id}, nil
		},
	}

	require.NoError(t, NewUserService(users, logger.Nop()).DeleteMe(context.Background(), 3))
	require.NotNil(t, got.Active)
	assert.False(t, *got.Active)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	svc := NewUserService(&fakeUserRepository{}, logger.Nop())

	role := models.Role("superuser")
	_, err := svc.Update(context.Background(), 3, models.UserUpdate{Role: &role})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, validators.FieldRole, vErr.Field)
}

func TestUserService_Get(t *testing.T) {
	users := &fakeUserRepository{
		findActiveByIDFn: func(context.Context, int64) (models.User, error) { return models.User{}, apperr.NotFound("user") },
	}

	_, err := NewUserService(users, logger.Nop()).Get(context.Background(), 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
