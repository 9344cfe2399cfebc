package middleware

import (
	"anoa.com/schoolrecords/internal/auth"
	"anoa.com/schoolrecords/internal/model"
	"anoa.com/schoolrecords/pkg/apperror"
	"anoa.com/schoolrecords/pkg/response"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

type AuthMiddleware struct {
	resolver auth.Resolver
}

func NewAuthMiddleware(resolver auth.Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth resolves the current identity and stores it in the request
// context. Requests without a resolvable identity stop here with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolver.Resolve(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRole passes only identities whose role is in the allowed set.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, apperror.Unauthenticated("Not authenticated"))
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.Forbidden("Not authorized"))
		c.Abort()
	}
}

// CurrentUser retrieves the resolved identity placed by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*model.User)
	return user, ok
}
