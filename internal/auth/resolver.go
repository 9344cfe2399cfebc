package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"anoa.com/schoolrecords/internal/model"
	"anoa.com/schoolrecords/internal/repository"
	"anoa.com/schoolrecords/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Resolver turns a request into an authenticated user. Role gating sits on
// top of this and does not care which strategy produced the identity.
type Resolver interface {
	Resolve(c *gin.Context) (*model.User, error)
}

// MockUserID is the identity the mock resolver always answers with.
const MockUserID uint = 1

// MockResolver is a development stand-in: every request is the user with
// id 1. Swap in TokenResolver for real credential verification.
type MockResolver struct {
	repo repository.UserRepository
}

func NewMockResolver(repo repository.UserRepository) *MockResolver {
	return &MockResolver{repo: repo}
}

func (r *MockResolver) Resolve(c *gin.Context) (*model.User, error) {
	user, err := r.repo.FindByID(c.Request.Context(), MockUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("Not authenticated")
		}
		return nil, err
	}

	return user, nil
}

// TokenResolver authenticates a bearer JWT whose subject is the user id.
type TokenResolver struct {
	repo   repository.UserRepository
	secret string
}

func NewTokenResolver(repo repository.UserRepository, secret string) *TokenResolver {
	return &TokenResolver{repo: repo, secret: secret}
}

func (r *TokenResolver) Resolve(c *gin.Context) (*model.User, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		return nil, apperror.Unauthenticated("authorization required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(r.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, apperror.Unauthenticated("invalid token claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid token claims")
	}

	user, err := r.repo.FindByID(c.Request.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("user not found")
		}
		return nil, err
	}

	return user, nil
}
