package model

import (
	"time"
)

// Viewer 观众档案，与账号一对一
type Viewer struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"user_id" gorm:"unique;not null"`
	User      *User     `json:"user,omitempty"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewerUpdate 观众档案可修改字段
type ViewerUpdate struct {
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// FavoriteFilm 观众收藏的电影
type FavoriteFilm struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	ViewerID  int       `json:"viewer_id" gorm:"uniqueIndex:idx_fav_film"`
	FilmID    int       `json:"film_id" gorm:"uniqueIndex:idx_fav_film"`
	CreatedAt time.Time `json:"created_at"`
	Film      *Film     `json:"film,omitempty"` // 关联查询时填充
}

// FavoriteAuthor 观众收藏的作者
type FavoriteAuthor struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	ViewerID  int       `json:"viewer_id" gorm:"uniqueIndex:idx_fav_author"`
	AuthorID  int       `json:"author_id" gorm:"uniqueIndex:idx_fav_author"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"author,omitempty"` // 关联查询时填充
}
