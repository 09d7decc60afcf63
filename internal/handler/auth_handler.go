package handler

import (
	"errors"

	"recipe-api/internal/dto"
	"recipe-api/internal/middleware"
	"recipe-api/internal/service"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 用户与令牌处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CreateUser 用户注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "注册信息"
// @Success 201 {object} utils.Response{data=dto.UserInfo}
// @Router /api/users/create [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewUserInfo(user))
}

// CreateToken 使用邮箱和密码换取令牌
// @Summary 获取令牌
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "登录信息"
// @Success 200 {object} utils.Response{data=dto.TokenResponse}
// @Router /api/users/token [post]
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			utils.ValidationErrorResponse(c, err.Error(), map[string]string{
				"non_field_errors": err.Error(),
			})
			return
		}
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.TokenResponse{Token: token})
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/users/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		utils.Unauthorized(c, "未提供身份认证信息")
		return
	}

	utils.SuccessResponse(c, dto.NewUserInfo(user))
}

// UpdateMe 更新当前用户的名字或密码
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewUserInfo(user))
}
