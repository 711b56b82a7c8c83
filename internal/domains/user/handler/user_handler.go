package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hoodlab-backend/internal/domains/user"
	"hoodlab-backend/internal/domains/user/model"
	"hoodlab-backend/internal/domains/user/service"
	"hoodlab-backend/internal/shared/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register - POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login - POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RefreshToken - POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetProfile - GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile - PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ChangePassword - PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

// AdminListUsers - GET /api/v1/admin/users
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	var q model.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
		return
	}

	result, err := h.service.AdminListUsers(c.Request.Context(), q)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Users, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// mapError chuyển domain error sang HTTP status
func (h *UserHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, user.ErrAccountDisabled):
		response.Forbidden(c, "ACCOUNT_DISABLED", "Account is disabled")
	case errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "USER_NOT_FOUND", "User not found")
	default:
		// ozzo-validation trả validation.Errors cho input sai
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.BadRequest(c, "VALIDATION_ERROR", err.Error())
			return
		}
		response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
	}
}
