package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 通用的存储库错误
var (
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 违反唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// mapError 将 gorm 错误映射为存储库错误
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateEntryError(err):
		return ErrDuplicateEntry
	default:
		return err
	}
}

// isDuplicateEntryError 检查常见驱动的唯一约束错误
func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
