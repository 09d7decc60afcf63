package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"recipe-api/internal/dto"
	"recipe-api/internal/models"
	"recipe-api/internal/repository"
	"recipe-api/internal/utils"
	"recipe-api/pkg/redis_limiter"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// price 字段最多5位数字、2位小数
var maxPrice = decimal.NewFromInt(1000)

// UploadLimiter 限制同一用户的并发上传数
type UploadLimiter interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string)
}

// RecipeService 菜谱服务
type RecipeService struct {
	recipeRepo     *repository.RecipeRepository
	tagRepo        *repository.AttributeRepository[models.Tag]
	ingredientRepo *repository.AttributeRepository[models.Ingredient]
	storage        ImageStorage
	limiter        UploadLimiter
	logger         logrus.FieldLogger
}

// NewRecipeService 创建菜谱服务，limiter 为 nil 时不限制并发上传
func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	tagRepo *repository.AttributeRepository[models.Tag],
	ingredientRepo *repository.AttributeRepository[models.Ingredient],
	storage ImageStorage,
	limiter UploadLimiter,
	logger logrus.FieldLogger,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		storage:        storage,
		limiter:        limiter,
		logger:         logger,
	}
}

// List 列出当前用户的菜谱
func (s *RecipeService) List(ctx context.Context, filter repository.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepo.List(ctx, filter)
}

// Get 获取当前用户的菜谱，不属于该用户时返回 ErrNotFound
func (s *RecipeService) Get(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDAndUserID(ctx, recipeID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return recipe, err
}

// Create 以当前用户为所有者创建菜谱
func (s *RecipeService) Create(ctx context.Context, userID uint, req *dto.RecipeRequest) (*models.Recipe, error) {
	patch := req.Patch()
	recipe := &models.Recipe{UserID: userID}
	if err := s.applyScalars(recipe, patch); err != nil {
		return nil, err
	}

	tags, ingredients, err := s.resolveAttributes(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	recipe.Tags = *tags
	recipe.Ingredients = *ingredients

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("创建菜谱失败: %w", err)
	}
	return recipe, nil
}

// Replace 整体替换菜谱(PUT)
func (s *RecipeService) Replace(ctx context.Context, userID, recipeID uint, req *dto.RecipeRequest) (*models.Recipe, error) {
	return s.Update(ctx, userID, recipeID, req.Patch())
}

// Update 部分更新菜谱(PATCH)，只修改请求中出现的字段
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint, patch *dto.RecipePatchRequest) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.applyScalars(recipe, patch); err != nil {
		return nil, err
	}

	tags, ingredients, err := s.resolveAttributes(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Update(ctx, recipe, tags, ingredients); err != nil {
		return nil, fmt.Errorf("更新菜谱失败: %w", err)
	}
	return recipe, nil
}

// Delete 删除菜谱
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("删除菜谱失败: %w", err)
	}
	return nil
}

// UploadImage 校验并保存菜谱图片，内容不是有效图片时不修改原有图片
func (s *RecipeService) UploadImage(ctx context.Context, userID, recipeID uint, filename string, content []byte) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	format, err := utils.DecodeImage(content)
	if err != nil {
		return nil, newValidationError("image", "请上传有效的图片。上传的文件不是图片或已损坏")
	}

	if s.limiter != nil {
		key := strconv.FormatUint(uint64(userID), 10)
		if err := s.limiter.Acquire(ctx, key); err != nil {
			if errors.Is(err, redis_limiter.ErrLimitReached) {
				return nil, ErrUploadBusy
			}
			return nil, fmt.Errorf("获取上传槽位失败: %w", err)
		}
		defer s.limiter.Release(ctx, key)
	}

	imagePath := utils.GenerateImagePath(filename, format)
	if err := s.storage.Save(imagePath, content); err != nil {
		return nil, fmt.Errorf("保存图片失败: %w", err)
	}

	if err := s.recipeRepo.UpdateImage(ctx, recipe, imagePath); err != nil {
		if rmErr := s.storage.Remove(imagePath); rmErr != nil {
			s.logger.WithError(rmErr).WithField("path", imagePath).Warn("清理图片失败")
		}
		return nil, fmt.Errorf("更新菜谱图片失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"user_id":   userID,
		"path":      imagePath,
		"size":      len(content),
	}).Info("菜谱图片已保存")

	return recipe, nil
}

// applyScalars 校验并写入标量字段
func (s *RecipeService) applyScalars(recipe *models.Recipe, patch *dto.RecipePatchRequest) error {
	fields := make(map[string]string)

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			fields["title"] = "标题不能为空"
		}
		recipe.Title = title
	}
	if patch.TimeMinutes != nil {
		if *patch.TimeMinutes < 0 {
			fields["time_minutes"] = "不能小于0"
		}
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		if msg := validatePrice(*patch.Price); msg != "" {
			fields["price"] = msg
		}
		recipe.Price = *patch.Price
	}
	if patch.Link != nil {
		link := strings.TrimSpace(*patch.Link)
		if msg := validateLink(link); msg != "" {
			fields["link"] = msg
		}
		recipe.Link = link
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// resolveAttributes 将ID列表解析为当前用户拥有的标签/食材，未出现的字段返回 nil
func (s *RecipeService) resolveAttributes(ctx context.Context, userID uint, patch *dto.RecipePatchRequest) (*[]models.Tag, *[]models.Ingredient, error) {
	var tags *[]models.Tag
	var ingredients *[]models.Ingredient

	if patch.Tags != nil {
		found, err := resolveOwned(ctx, s.tagRepo, userID, *patch.Tags, "tags")
		if err != nil {
			return nil, nil, err
		}
		tags = &found
	}
	if patch.Ingredients != nil {
		found, err := resolveOwned(ctx, s.ingredientRepo, userID, *patch.Ingredients, "ingredients")
		if err != nil {
			return nil, nil, err
		}
		ingredients = &found
	}

	return tags, ingredients, nil
}

func resolveOwned[T models.Attribute](ctx context.Context, repo *repository.AttributeRepository[T], userID uint, ids []uint, field string) ([]T, error) {
	unique := dedupe(ids)
	found, err := repo.GetByIDsAndUserID(ctx, unique, userID)
	if err != nil {
		return nil, fmt.Errorf("查询%s失败: %w", field, err)
	}
	if len(found) != len(unique) {
		return nil, newValidationError(field, "包含不存在或不属于当前用户的ID")
	}
	return found, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validatePrice(price decimal.Decimal) string {
	if !price.Round(2).Equal(price) {
		return "小数位不能超过2位"
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return "总位数不能超过5位"
	}
	return ""
}

func validateLink(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "请输入有效的URL"
	}
	return ""
}
