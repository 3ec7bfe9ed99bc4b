package model

import (
	"time"
)

// Author 作者档案
// UserID 可为空：从外部导入的作者没有平台账号
type Author struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	UserID    *int       `json:"user_id" gorm:"unique"`
	Name      string     `json:"name" gorm:"index"`
	Email     string     `json:"email"`
	Birthdate *time.Time `json:"birthdate" gorm:"type:date"`
	Origin    string     `json:"origin"`
	Films     []*Film    `json:"films,omitempty" gorm:"many2many:film_authors"`
	CreatedAt time.Time  `json:"created_at"`
}

// AuthorUpdate 作者可修改字段
type AuthorUpdate struct {
	Name      *string    `json:"name" binding:"omitempty,min=1"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Birthdate *time.Time `json:"birthdate"`
}
