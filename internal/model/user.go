package model

import (
	"time"
)

// 账号角色，封闭枚举
const (
	RoleAuthor = "author"
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// DefaultRole 账号创建时的默认角色。所有创建路径统一走这里，
// 自助注册时客户端传入的 role 一律丢弃。
func DefaultRole() string {
	return RoleViewer
}

// ValidRole 判断角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAuthor, RoleViewer, RoleAdmin:
		return true
	}
	return false
}

// User 账号模型
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique"`
	Username     string    `json:"username" gorm:"unique"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
