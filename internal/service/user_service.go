package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

// UserPatch carries the fields of a partial update. Nil means unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, patch UserPatch) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	userRepo  repository.UserRepository
	publisher EventPublisher
}

func NewUserService(userRepo repository.UserRepository, publisher EventPublisher) UserService {
	return &userService{userRepo: userRepo, publisher: publisher}
}

func (s *userService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.userRepo.ExistsByEmail(ctx, tx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return emailTaken(email)
		}

		// A concurrent insert of the same email still trips the unique index.
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return emailTaken(email)
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID)
	publish(s.publisher, EventUserCreated, user)
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, patch UserPatch) (*models.User, error) {
	var result *models.User

	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return userNotFound(id)
			}
			return err
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil && *patch.Email != user.Email {
			if err := validateEmail(*patch.Email); err != nil {
				return err
			}
			taken, err := s.userRepo.ExistsByEmail(ctx, tx, *patch.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return emailTaken(*patch.Email)
			}
			user.Email = *patch.Email
		}

		if err := s.userRepo.Save(ctx, tx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return emailTaken(user.Email)
			}
			return fmt.Errorf("update user: %w", err)
		}
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user updated", "user_id", id)
	return result, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.userRepo.GetDB(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.userRepo.ExistsByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return userNotFound(id)
		}

		if err := s.userRepo.DeleteByID(ctx, tx, id); err != nil {
			if repository.IsForeignKeyViolation(err) {
				return conflict("user with id %d still has items, requests, bookings or comments", id)
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return validation("email must not be blank")
	}
	if !strings.Contains(email, "@") {
		return validation("invalid email format: %s", email)
	}
	return nil
}

func emailTaken(email string) error {
	return conflict("user with email %s already exists", email)
}
