package repository

import (
	"errors"
	"time"

	"github.com/user/cinecat/internal/model"
	"gorm.io/gorm"
)

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create 创建作者
func (r *AuthorRepository) Create(author *model.Author) error {
	if author.CreatedAt.IsZero() {
		author.CreatedAt = time.Now()
	}
	return r.db.Create(author).Error
}

// FindByID 根据 ID 查找作者（带电影）
func (r *AuthorRepository) FindByID(id int) (*model.Author, error) {
	var author model.Author
	err := r.db.Preload("Films").First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &author, nil
}

// List 分页获取作者列表
func (r *AuthorRepository) List(limit, offset int) ([]*model.Author, int64, error) {
	var total int64
	if err := r.db.Model(&model.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []*model.Author
	err := r.db.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error
	return authors, total, err
}

// Update 按字段更新作者
func (r *AuthorRepository) Update(id int, upd *model.AuthorUpdate) error {
	values := map[string]interface{}{}
	if upd.Name != nil {
		values["name"] = *upd.Name
	}
	if upd.Email != nil {
		values["email"] = *upd.Email
	}
	if upd.Birthdate != nil {
		values["birthdate"] = *upd.Birthdate
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.Model(&model.Author{}).Where("id = ?", id).Updates(values).Error
}

// FilmCount 统计作者关联的电影数
func (r *AuthorRepository) FilmCount(id int) (int64, error) {
	assoc := r.db.Model(&model.Author{ID: id}).Association("Films")
	count := assoc.Count()
	return count, assoc.Error
}

// Delete 删除作者。调用方必须先确认没有电影关联（删除保护在 service 层）
func (r *AuthorRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&model.FavoriteAuthor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.AuthorRating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Author{}, id).Error
	})
}

// UpsertByNaturalKey 按自然键（姓名+生日+来源）查找或创建作者
func (r *AuthorRepository) UpsertByNaturalKey(author *model.Author) error {
	if author.CreatedAt.IsZero() {
		author.CreatedAt = time.Now()
	}
	query := r.db.Where("name = ? AND origin = ?", author.Name, author.Origin)
	if author.Birthdate == nil {
		query = query.Where("birthdate IS NULL")
	} else {
		query = query.Where("birthdate = ?", *author.Birthdate)
	}
	return query.FirstOrCreate(author).Error
}
