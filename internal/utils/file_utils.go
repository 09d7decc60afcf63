package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// RecipeImageDir 菜谱图片在媒体目录下的相对路径
const RecipeImageDir = "uploads/recipes"

// DecodeImage 完整解码图片以确认内容有效，返回格式名(jpeg/png/gif/webp/bmp)
func DecodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("文件为空")
	}
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("无法识别的图片: %w", err)
	}
	return format, nil
}

// GenerateImagePath 用随机UUID加原扩展名生成存储路径，原文件名没有扩展名时使用图片格式
func GenerateImagePath(originalName, format string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || ext == "." {
		ext = "." + format
	}
	return path.Join(RecipeImageDir, uuid.NewString()+ext)
}
