package handler

import (
	"io"

	"recipe-api/internal/dto"
	"recipe-api/internal/middleware"
	"recipe-api/internal/repository"
	"recipe-api/internal/service"
	"recipe-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// RecipeHandler 菜谱处理器
type RecipeHandler struct {
	recipeService  *service.RecipeService
	renderer       dto.RecipeRenderer
	maxUploadBytes int64
}

// NewRecipeHandler 创建菜谱处理器
func NewRecipeHandler(recipeService *service.RecipeService, renderer dto.RecipeRenderer, maxUploadBytes int64) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		renderer:       renderer,
		maxUploadBytes: maxUploadBytes,
	}
}

// List 列出菜谱，tags/ingredients 为逗号分隔的ID
func (h *RecipeHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	filter := repository.RecipeFilter{UserID: userID}
	fields := make(map[string]string)

	var err error
	if filter.TagIDs, err = utils.ParseIDList(c.Query("tags")); err != nil {
		fields["tags"] = err.Error()
	}
	if filter.IngredientIDs, err = utils.ParseIDList(c.Query("ingredients")); err != nil {
		fields["ingredients"] = err.Error()
	}
	if len(fields) > 0 {
		utils.ValidationErrorResponse(c, "参数校验失败", fields)
		return
	}

	recipes, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.renderer.RenderList(recipes))
}

// Get 菜谱详情，标签和食材展开
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.renderer.Render(recipe, dto.ShapeDetail))
}

// Create 创建菜谱
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, h.renderer.Render(recipe, dto.ShapeList))
}

// Replace 整体替换菜谱(PUT)
func (h *RecipeHandler) Replace(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Replace(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.renderer.Render(recipe, dto.ShapeList))
}

// Update 部分更新菜谱(PATCH)
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.renderer.Render(recipe, dto.ShapeList))
}

// Delete 删除菜谱
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContent(c)
}

// UploadImage 上传菜谱图片，表单字段为 image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.ValidationErrorResponse(c, "参数校验失败", map[string]string{
			"image": "未提交文件",
		})
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		utils.ValidationErrorResponse(c, "参数校验失败", map[string]string{
			"image": "文件过大",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.BadRequest(c, "打开文件失败: "+err.Error())
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		utils.BadRequest(c, "读取文件失败: "+err.Error())
		return
	}

	recipe, err := h.recipeService.UploadImage(c.Request.Context(), userID, recipeID, file.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, h.renderer.Render(recipe, dto.ShapeImage))
}
