package handler

import (
	"net/http"
	"strconv"

	"anoa.com/schoolrecords/internal/dto"
	"anoa.com/schoolrecords/internal/service"
	"anoa.com/schoolrecords/pkg/response"
	"anoa.com/schoolrecords/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":  "List of all users",
		"data": users,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FormatValidationError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":  "User created",
		"user": user,
	})
}

func (h *UserHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	student, err := h.userService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *UserHandler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var input dto.UpdateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, validator.FormatValidationError(err))
		return
	}

	if err := h.userService.UpdateStudentActive(c.Request.Context(), id, *input.IsActive); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Student updated successfully"})
}

// pathID parses an integer path parameter, answering 422 itself when the
// value is not an integer.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.ValidationError(c, name+" must be an integer")
		return 0, false
	}
	return uint(id), true
}
