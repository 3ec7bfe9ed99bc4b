package model

import (
	"time"
)

// 记录来源：手工录入 / 外部导入
const (
	OriginManual   = "manual"
	OriginImported = "imported"
)

// 电影上映状态
const (
	StatusInProduction = "in_production"
	StatusInTheaters   = "in_theaters"
	StatusReleased     = "released"
)

// 编辑评级档位
const (
	BucketExcellent = "excellent"
	BucketGood      = "good"
	BucketAverage   = "average"
	BucketPoor      = "poor"
)

// ValidStatus 判断上映状态是否合法
func ValidStatus(s string) bool {
	switch s {
	case StatusInProduction, StatusInTheaters, StatusReleased:
		return true
	}
	return false
}

// ValidBucket 判断评级档位是否合法（空值表示未评级）
func ValidBucket(b string) bool {
	switch b {
	case "", BucketExcellent, BucketGood, BucketAverage, BucketPoor:
		return true
	}
	return false
}

// Film 电影模型
// ReleaseDate 存字符串：导入缺失时写入哨兵值 "n/a"，且它参与自然键匹配
type Film struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"index"`
	Description  string    `json:"description"`
	ReleaseDate  string    `json:"release_date"`
	RatingBucket string    `json:"rating_bucket"`
	Status       string    `json:"status"`
	Origin       string    `json:"origin"`
	Authors      []*Author `json:"authors,omitempty" gorm:"many2many:film_authors"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FilmUpdate 电影可修改字段，逐项列出，不做通用字段拷贝
type FilmUpdate struct {
	Title        *string `json:"title" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	ReleaseDate  *string `json:"release_date"`
	RatingBucket *string `json:"rating_bucket" binding:"omitempty,ratingbucket"`
	Status       *string `json:"status" binding:"omitempty,filmstatus"`
}
