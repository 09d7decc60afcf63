package handler

import (
	"recipe-api/internal/dto"
	"recipe-api/internal/middleware"
	"recipe-api/internal/models"
	"recipe-api/internal/service"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// AttributeHandler 标签/食材处理器
type AttributeHandler[T models.Attribute] struct {
	service *service.AttributeService[T]
}

// NewAttributeHandler 创建标签/食材处理器
func NewAttributeHandler[T models.Attribute](svc *service.AttributeService[T]) *AttributeHandler[T] {
	return &AttributeHandler[T]{service: svc}
}

// List 列出当前用户的记录，assigned_only=1 时只返回已被菜谱使用的
func (h *AttributeHandler[T]) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	assignedOnly, err := utils.ParseFlag(c.Query("assigned_only"))
	if err != nil {
		utils.ValidationErrorResponse(c, "参数校验失败", map[string]string{
			"assigned_only": "必须为0或1",
		})
		return
	}

	items, err := h.service.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, dto.NewAttributeResponses(items))
}

// Create 创建记录
func (h *AttributeHandler[T]) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewAttributeResponse(*item))
}
