package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageStorage 上传文件的持久化位置
type ImageStorage interface {
	Save(relPath string, content []byte) error
	Remove(relPath string) error
}

// LocalImageStorage 保存到本地媒体目录
type LocalImageStorage struct {
	Root string
}

// NewLocalImageStorage 创建本地存储
func NewLocalImageStorage(root string) *LocalImageStorage {
	return &LocalImageStorage{Root: root}
}

// Save 先写临时文件再重命名，避免读到写了一半的图片
func (s *LocalImageStorage) Save(relPath string, content []byte) error {
	fullPath := filepath.Join(s.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("写入文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}

	return os.Rename(tmp.Name(), fullPath)
}

// Remove 删除文件，文件不存在时不报错
func (s *LocalImageStorage) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(relPath)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
