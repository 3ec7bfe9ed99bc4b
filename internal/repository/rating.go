package repository

import (
	"errors"
	"time"

	"github.com/user/cinecat/internal/model"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// CreateFilmRating 创建电影评分。只创建不覆盖：
// (viewer, film) 重复时由唯一索引报 gorm.ErrDuplicatedKey
func (r *RatingRepository) CreateFilmRating(rating *model.FilmRating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	return r.db.Create(rating).Error
}

// CreateAuthorRating 创建作者评分，同上
func (r *RatingRepository) CreateAuthorRating(rating *model.AuthorRating) error {
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	return r.db.Create(rating).Error
}

// FindFilmRating 查找观众对电影的评分
func (r *RatingRepository) FindFilmRating(viewerID, filmID int) (*model.FilmRating, error) {
	var rating model.FilmRating
	err := r.db.Where("viewer_id = ? AND film_id = ?", viewerID, filmID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindAuthorRating 查找观众对作者的评分
func (r *RatingRepository) FindAuthorRating(viewerID, authorID int) (*model.AuthorRating, error) {
	var rating model.AuthorRating
	err := r.db.Where("viewer_id = ? AND author_id = ?", viewerID, authorID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListFilmRatingsByViewer 获取观众的电影评分列表
func (r *RatingRepository) ListFilmRatingsByViewer(viewerID, limit, offset int) ([]*model.FilmRating, error) {
	var ratings []*model.FilmRating
	err := r.db.Preload("Film").
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	return ratings, err
}

// ListAuthorRatingsByViewer 获取观众的作者评分列表
func (r *RatingRepository) ListAuthorRatingsByViewer(viewerID, limit, offset int) ([]*model.AuthorRating, error) {
	var ratings []*model.AuthorRating
	err := r.db.Preload("Author").
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	return ratings, err
}
