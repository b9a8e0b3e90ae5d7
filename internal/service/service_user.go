package service

import (
	"context"
	"fmt"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (s *userService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.userRepository.FindActiveByID(ctx, id)
}

func (s *userService) List(ctx context.Context, q query.Query) ([]models.User, error) {
	if err := checkPage(ctx, q, s.userRepository.Count); err != nil {
		return nil, err
	}
	return s.userRepository.List(ctx, q)
}

// UpdateMe changes the profile fields of the caller. Password fields are
// rejected; role and active flag are not reachable from here.
func (s *userService) UpdateMe(ctx context.Context, id int64, req models.UpdateMeRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.Update(ctx, id, models.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}
	return user, nil
}

// DeleteMe deactivates the caller's account. The row is kept.
func (s *userService) DeleteMe(ctx context.Context, id int64) error {
	inactive := false
	if _, err := s.userRepository.Update(ctx, id, models.UserUpdate{Active: &inactive}); err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*userService.DeleteMe").Int64("user_id", id).Msg("user deactivated")
	return nil
}

func (s *userService) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, err
	}
	return s.userRepository.Update(ctx, id, update)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepository.Delete(ctx, id)
}

// checkPage enforces strict paging on q by counting the matching rows.
func checkPage(ctx context.Context, q query.Query, count func(context.Context, query.Query) (int, error)) error {
	if !q.Strict() || q.Page() == 1 {
		return nil
	}

	total, err := count(ctx, q)
	if err != nil {
		return fmt.Errorf("error counting results: %w", err)
	}
	return q.CheckPage(total)
}
