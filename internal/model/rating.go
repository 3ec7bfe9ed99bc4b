package model

import (
	"time"
)

// 评分取值范围
const (
	ScoreMin = 1
	ScoreMax = 5
)

// ValidScore 判断评分是否在 [1,5] 区间内
func ValidScore(score int) bool {
	return score >= ScoreMin && score <= ScoreMax
}

// FilmRating 观众对电影的评分，(viewer, film) 唯一。
// 唯一索引是权威防线：并发重复提交由数据库约束裁决，不靠应用逻辑。
type FilmRating struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	ViewerID  int       `json:"viewer_id" gorm:"uniqueIndex:idx_rating_film"`
	FilmID    int       `json:"film_id" gorm:"uniqueIndex:idx_rating_film"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Film      *Film     `json:"film,omitempty"`
}

// AuthorRating 观众对作者的评分，(viewer, author) 唯一
type AuthorRating struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	ViewerID  int       `json:"viewer_id" gorm:"uniqueIndex:idx_rating_author"`
	AuthorID  int       `json:"author_id" gorm:"uniqueIndex:idx_rating_author"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"author,omitempty"`
}
