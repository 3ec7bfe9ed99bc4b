package service

import (
	"github.com/user/cinecat/internal/apperr"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/repository"
)

// CatalogService 电影/作者目录的读写规则。
// 所有变更先过这里的校验再落库
type CatalogService struct {
	films   *repository.FilmRepository
	authors *repository.AuthorRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{
		films:   repos.Film,
		authors: repos.Author,
	}
}

// CreateFilm 创建电影（管理员操作）
func (s *CatalogService) CreateFilm(film *model.Film) error {
	if film.Title == "" {
		return apperr.Validation("电影标题不能为空")
	}
	if !model.ValidStatus(film.Status) {
		return apperr.Validation("非法的上映状态: %s", film.Status)
	}
	if !model.ValidBucket(film.RatingBucket) {
		return apperr.Validation("非法的评级档位: %s", film.RatingBucket)
	}
	if film.Origin == "" {
		film.Origin = model.OriginManual
	}
	return s.films.Create(film)
}

// GetFilm 获取电影详情
func (s *CatalogService) GetFilm(id int) (*model.Film, error) {
	film, err := s.films.FindByID(id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperr.NotFound("电影不存在: %d", id)
	}
	return film, nil
}

// ListFilms 电影列表。匿名可访问，但按年份筛选需要登录
func (s *CatalogService) ListFilms(year string, authenticated bool, limit, offset int) ([]*model.Film, int64, error) {
	if year != "" && !authenticated {
		return nil, 0, apperr.Auth("按上映年份筛选需要登录")
	}
	return s.films.List(year, limit, offset)
}

// UpdateFilm 更新电影（管理员操作）
func (s *CatalogService) UpdateFilm(id int, upd *model.FilmUpdate) (*model.Film, error) {
	if _, err := s.GetFilm(id); err != nil {
		return nil, err
	}
	if upd.Status != nil && !model.ValidStatus(*upd.Status) {
		return nil, apperr.Validation("非法的上映状态: %s", *upd.Status)
	}
	if upd.RatingBucket != nil && !model.ValidBucket(*upd.RatingBucket) {
		return nil, apperr.Validation("非法的评级档位: %s", *upd.RatingBucket)
	}
	if err := s.films.Update(id, upd); err != nil {
		return nil, err
	}
	return s.GetFilm(id)
}

// DeleteFilm 删除电影（管理员操作）
func (s *CatalogService) DeleteFilm(id int) error {
	if _, err := s.GetFilm(id); err != nil {
		return err
	}
	return s.films.Delete(id)
}

// CreateAuthor 创建作者（管理员操作）
func (s *CatalogService) CreateAuthor(author *model.Author) error {
	if author.Name == "" {
		return apperr.Validation("作者姓名不能为空")
	}
	if author.Origin == "" {
		author.Origin = model.OriginManual
	}
	return s.authors.Create(author)
}

// GetAuthor 获取作者详情
func (s *CatalogService) GetAuthor(id int) (*model.Author, error) {
	author, err := s.authors.FindByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("作者不存在: %d", id)
	}
	return author, nil
}

// ListAuthors 作者列表，匿名可访问
func (s *CatalogService) ListAuthors(limit, offset int) ([]*model.Author, int64, error) {
	return s.authors.List(limit, offset)
}

// UpdateAuthor 更新作者（管理员操作）
func (s *CatalogService) UpdateAuthor(id int, upd *model.AuthorUpdate) (*model.Author, error) {
	if _, err := s.GetAuthor(id); err != nil {
		return nil, err
	}
	if err := s.authors.Update(id, upd); err != nil {
		return nil, err
	}
	return s.GetAuthor(id)
}

// DeleteAuthor 删除作者。删除保护：仍关联电影的作者不能删，
// 不做级联解绑，先手动解除关联
func (s *CatalogService) DeleteAuthor(id int) error {
	if _, err := s.GetAuthor(id); err != nil {
		return err
	}
	count, err := s.authors.FilmCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("作者仍关联着 %d 部电影，无法删除", count)
	}
	return s.authors.Delete(id)
}

// LinkAuthor 把作者挂到电影上（幂等，管理员操作）
func (s *CatalogService) LinkAuthor(filmID, authorID int) error {
	film, err := s.GetFilm(filmID)
	if err != nil {
		return err
	}
	author, err := s.GetAuthor(authorID)
	if err != nil {
		return err
	}
	return s.films.AppendAuthor(film, author)
}

// UnlinkAuthor 解除电影与作者的关联（管理员操作）
func (s *CatalogService) UnlinkAuthor(filmID, authorID int) error {
	film, err := s.GetFilm(filmID)
	if err != nil {
		return err
	}
	author, err := s.GetAuthor(authorID)
	if err != nil {
		return err
	}
	return s.films.RemoveAuthor(film, author)
}
