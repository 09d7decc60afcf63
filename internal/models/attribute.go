package models

// Tag 用户私有的菜谱标签
type Tag struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// Ingredient 用户私有的食材
type Ingredient struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"-"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}

// Attribute 可挂到菜谱上的属性类型
type Attribute interface {
	Tag | Ingredient
}
