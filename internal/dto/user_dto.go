package dto

import "anoa.com/schoolrecords/internal/model"

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3,max=50"`
	IsActive *bool  `json:"is_active"`
	Role     string `json:"role" binding:"required"`
}

type UpdateStudentInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserSmall is the projection returned by the list and student endpoints.
// It never carries the password hash.
type UserSmall struct {
	Email    string     `json:"email"`
	IsActive bool       `json:"is_active"`
	Role     model.Role `json:"role"`
}

func NewUserSmall(u *model.User) UserSmall {
	return UserSmall{
		Email:    u.Email,
		IsActive: u.IsActive,
		Role:     u.Role,
	}
}

// UserDetail is the single-user serialization. StudentData rides along when
// the row has one.
type UserDetail struct {
	ID          uint               `json:"id"`
	Email       string             `json:"email"`
	IsActive    bool               `json:"is_active"`
	Role        model.Role         `json:"role"`
	StudentData *model.StudentData `json:"student_data,omitempty"`
}

func NewUserDetail(u *model.User) UserDetail {
	return UserDetail{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		Role:        u.Role,
		StudentData: u.StudentData,
	}
}
