package repository

import (
	"errors"
	"time"

	"github.com/user/cinecat/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewerRepository struct {
	db *gorm.DB
}

func NewViewerRepository(db *gorm.DB) *ViewerRepository {
	return &ViewerRepository{db: db}
}

// Create 创建观众档案
func (r *ViewerRepository) Create(tx *gorm.DB, viewer *model.Viewer) error {
	if tx == nil {
		tx = r.db
	}
	if viewer.CreatedAt.IsZero() {
		viewer.CreatedAt = time.Now()
	}
	return tx.Create(viewer).Error
}

// FindByID 根据 ID 查找观众档案
func (r *ViewerRepository) FindByID(id int) (*model.Viewer, error) {
	var viewer model.Viewer
	err := r.db.Preload("User").First(&viewer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &viewer, nil
}

// FindByUserID 根据账号 ID 查找观众档案
func (r *ViewerRepository) FindByUserID(userID int) (*model.Viewer, error) {
	var viewer model.Viewer
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&viewer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &viewer, nil
}

// List 分页获取观众档案列表
func (r *ViewerRepository) List(limit, offset int) ([]*model.Viewer, int64, error) {
	var total int64
	if err := r.db.Model(&model.Viewer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var viewers []*model.Viewer
	err := r.db.Preload("User").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&viewers).Error
	return viewers, total, err
}

// Update 按字段更新观众档案
func (r *ViewerRepository) Update(id int, upd *model.ViewerUpdate) error {
	values := map[string]interface{}{}
	if upd.Bio != nil {
		values["bio"] = *upd.Bio
	}
	if upd.Avatar != nil {
		values["avatar"] = *upd.Avatar
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.Model(&model.Viewer{}).Where("id = ?", id).Updates(values).Error
}

// AddFavoriteFilm 收藏电影（幂等：已收藏时静默跳过）
func (r *ViewerRepository) AddFavoriteFilm(viewerID, filmID int) error {
	favorite := &model.FavoriteFilm{
		ViewerID:  viewerID,
		FilmID:    filmID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(favorite).Error
}

// RemoveFavoriteFilm 取消收藏电影
func (r *ViewerRepository) RemoveFavoriteFilm(viewerID, filmID int) error {
	return r.db.Where("viewer_id = ? AND film_id = ?", viewerID, filmID).Delete(&model.FavoriteFilm{}).Error
}

// ListFavoriteFilms 获取收藏的电影列表
func (r *ViewerRepository) ListFavoriteFilms(viewerID, limit, offset int) ([]*model.FavoriteFilm, error) {
	var favorites []*model.FavoriteFilm
	err := r.db.Preload("Film").
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	return favorites, err
}

// CountFavoriteFilms 统计收藏的电影数量
func (r *ViewerRepository) CountFavoriteFilms(viewerID int) (int, error) {
	var count int64
	err := r.db.Model(&model.FavoriteFilm{}).Where("viewer_id = ?", viewerID).Count(&count).Error
	return int(count), err
}

// AddFavoriteAuthor 收藏作者（幂等）
func (r *ViewerRepository) AddFavoriteAuthor(viewerID, authorID int) error {
	favorite := &model.FavoriteAuthor{
		ViewerID:  viewerID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(favorite).Error
}

// RemoveFavoriteAuthor 取消收藏作者
func (r *ViewerRepository) RemoveFavoriteAuthor(viewerID, authorID int) error {
	return r.db.Where("viewer_id = ? AND author_id = ?", viewerID, authorID).Delete(&model.FavoriteAuthor{}).Error
}

// ListFavoriteAuthors 获取收藏的作者列表
func (r *ViewerRepository) ListFavoriteAuthors(viewerID, limit, offset int) ([]*model.FavoriteAuthor, error) {
	var favorites []*model.FavoriteAuthor
	err := r.db.Preload("Author").
		Where("viewer_id = ?", viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	return favorites, err
}

// CountFavoriteAuthors 统计收藏的作者数量
func (r *ViewerRepository) CountFavoriteAuthors(viewerID int) (int, error) {
	var count int64
	err := r.db.Model(&model.FavoriteAuthor{}).Where("viewer_id = ?", viewerID).Count(&count).Error
	return int(count), err
}
