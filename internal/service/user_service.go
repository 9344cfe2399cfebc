package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/schoolrecords/internal/dto"
	"anoa.com/schoolrecords/internal/model"
	"anoa.com/schoolrecords/internal/repository"
	"anoa.com/schoolrecords/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	GetAllUsers(ctx context.Context) ([]dto.UserSmall, error)
	GetUser(ctx context.Context, id uint) (*dto.UserDetail, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserSmall, error)
	GetStudent(ctx context.Context, id uint) (*dto.UserSmall, error)
	UpdateStudentActive(ctx context.Context, id uint, active bool) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]dto.UserSmall, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]dto.UserSmall, 0, len(users))
	for _, u := range users {
		response = append(response, dto.NewUserSmall(u))
	}

	return response, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*dto.UserDetail, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	detail := dto.NewUserDetail(user)
	return &detail, nil
}

func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserSmall, error) {
	// Pre-check for a friendly conflict message. This check and the insert
	// below are not one atomic step; the unique index on email catches the
	// losing side of a concurrent pair.
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("User already exists with this email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := &model.User{
		Email:          input.Email,
		HashedPassword: string(hashedPassword),
		IsActive:       isActive,
		Role:           model.Role(input.Role),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User already exists with this email")
		}
		return nil, err
	}

	small := dto.NewUserSmall(user)
	return &small, nil
}

func (s *userService) GetStudent(ctx context.Context, id uint) (*dto.UserSmall, error) {
	student, err := s.repo.FindStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Student not found")
		}
		return nil, err
	}

	small := dto.NewUserSmall(student)
	return &small, nil
}

func (s *userService) UpdateStudentActive(ctx context.Context, id uint, active bool) error {
	if _, err := s.repo.FindStudentByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Student not found")
		}
		return err
	}

	return s.repo.UpdateIsActive(ctx, id, active)
}
