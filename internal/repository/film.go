package repository

import (
	"errors"
	"time"

	"github.com/user/cinecat/internal/model"
	"gorm.io/gorm"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// Create 创建电影
func (r *FilmRepository) Create(film *model.Film) error {
	if film.CreatedAt.IsZero() {
		film.CreatedAt = time.Now()
	}
	film.UpdatedAt = time.Now()
	return r.db.Create(film).Error
}

// FindByID 根据 ID 查找电影（带作者）
func (r *FilmRepository) FindByID(id int) (*model.Film, error) {
	var film model.Film
	err := r.db.Preload("Authors").First(&film, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &film, nil
}

// List 分页获取电影列表，year 非空时按上映年份过滤
func (r *FilmRepository) List(year string, limit, offset int) ([]*model.Film, int64, error) {
	query := r.db.Model(&model.Film{})
	if year != "" {
		// ReleaseDate 为 YYYY-MM-DD 字符串（导入缺失时为 "n/a"）
		query = query.Where("release_date LIKE ?", year+"-%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var films []*model.Film
	err := query.Preload("Authors").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&films).Error
	return films, total, err
}

// Update 按字段更新电影，零值不覆盖未提交的字段
func (r *FilmRepository) Update(id int, upd *model.FilmUpdate) error {
	values := map[string]interface{}{"updated_at": time.Now()}
	if upd.Title != nil {
		values["title"] = *upd.Title
	}
	if upd.Description != nil {
		values["description"] = *upd.Description
	}
	if upd.ReleaseDate != nil {
		values["release_date"] = *upd.ReleaseDate
	}
	if upd.RatingBucket != nil {
		values["rating_bucket"] = *upd.RatingBucket
	}
	if upd.Status != nil {
		values["status"] = *upd.Status
	}
	return r.db.Model(&model.Film{}).Where("id = ?", id).Updates(values).Error
}

// Delete 删除电影及其关联关系
func (r *FilmRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&model.FavoriteFilm{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&model.FilmRating{}).Error; err != nil {
			return err
		}
		film := model.Film{ID: id}
		if err := tx.Model(&film).Association("Authors").Clear(); err != nil {
			return err
		}
		return tx.Delete(&film).Error
	})
}

// UpsertByNaturalKey 按自然键（标题+简介+上映日期+来源）查找或创建电影。
// 导入任务重复执行时靠它保证不产生重复行。
func (r *FilmRepository) UpsertByNaturalKey(film *model.Film) error {
	if film.CreatedAt.IsZero() {
		film.CreatedAt = time.Now()
	}
	film.UpdatedAt = time.Now()
	return r.db.Where(&model.Film{
		Title:       film.Title,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate,
		Origin:      film.Origin,
	}).FirstOrCreate(film).Error
}

// AppendAuthor 把作者挂到电影上（幂等：重复添加不报错不重复）
func (r *FilmRepository) AppendAuthor(film *model.Film, author *model.Author) error {
	return r.db.Model(film).Association("Authors").Append(author)
}

// RemoveAuthor 解除电影与作者的关联
func (r *FilmRepository) RemoveAuthor(film *model.Film, author *model.Author) error {
	return r.db.Model(film).Association("Authors").Delete(author)
}
