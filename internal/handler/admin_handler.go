package handler

import (
	"strconv"

	"recipe-api/internal/dto"
	"recipe-api/internal/service"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	authService *service.AuthService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ListUsers 分页列出所有用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := h.authService.ListUsers(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.AdminUserInfo, len(users))
	for i := range users {
		items[i] = dto.NewAdminUserInfo(&users[i])
	}

	utils.SuccessResponse(c, dto.PaginatedResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
