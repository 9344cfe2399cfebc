package handler

import (
	"net/http"

	"anoa.com/schoolrecords/internal/dto"
	"anoa.com/schoolrecords/internal/service"
	"anoa.com/schoolrecords/pkg/response"
	"anoa.com/schoolrecords/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges email+password for a bearer token. Only meaningful when
// the server runs with AUTH_MODE=token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FormatValidationError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
