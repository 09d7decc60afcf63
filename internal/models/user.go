package models

import (
	"time"
)

// User 用户模型，以邮箱作为登录名
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255" json:"name"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	Tags        []Tag        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipes     []Recipe     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// AuthToken 不透明的访问令牌，每个用户最多一个
type AuthToken struct {
	Key       string    `gorm:"column:token_key;primarykey;size:64" json:"token"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (AuthToken) TableName() string {
	return "auth_tokens"
}
