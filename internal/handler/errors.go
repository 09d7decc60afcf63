package handler

import (
	"errors"
	"strconv"

	"recipe-api/internal/service"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError 将服务层错误转换为HTTP响应
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, "参数校验失败", validationErr.Fields)
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, "未找到")
	case errors.Is(err, service.ErrUploadBusy):
		utils.TooManyRequests(c, err.Error())
	default:
		_ = c.Error(err)
		utils.InternalError(c, "服务器内部错误")
	}
}

// respondBindError 请求体绑定失败
func respondBindError(c *gin.Context, err error) {
	utils.ValidationErrorResponse(c, "参数校验失败", utils.FormatValidationError(err))
}

// parseIDParam 解析路径中的ID，非法ID按不存在处理
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.NotFound(c, "未找到")
		return 0, false
	}
	return uint(id), true
}
