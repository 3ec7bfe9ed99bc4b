package service

import (
	"errors"

	"github.com/user/cinecat/internal/apperr"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/repository"
	"gorm.io/gorm"
)

// ViewerService 观众自助操作：档案、收藏、评分。
// 所有操作只作用在当前登录账号自己的档案上
type ViewerService struct {
	viewers *repository.ViewerRepository
	films   *repository.FilmRepository
	authors *repository.AuthorRepository
	ratings *repository.RatingRepository
}

// NewViewerService 创建观众服务
func NewViewerService(repos *repository.Repositories) *ViewerService {
	return &ViewerService{
		viewers: repos.Viewer,
		films:   repos.Film,
		authors: repos.Author,
		ratings: repos.Rating,
	}
}

// profileOf 把账号 ID 换成观众档案，没有档案视为 NotFound
func (s *ViewerService) profileOf(userID int) (*model.Viewer, error) {
	viewer, err := s.viewers.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, apperr.NotFound("当前账号没有观众档案")
	}
	return viewer, nil
}

// GetOwnProfile 获取自己的观众档案
func (s *ViewerService) GetOwnProfile(userID int) (*model.Viewer, error) {
	return s.profileOf(userID)
}

// UpdateOwnProfile 更新自己的观众档案
func (s *ViewerService) UpdateOwnProfile(userID int, upd *model.ViewerUpdate) (*model.Viewer, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	if err := s.viewers.Update(viewer.ID, upd); err != nil {
		return nil, err
	}
	return s.viewers.FindByID(viewer.ID)
}

// AddFavoriteFilm 收藏电影。重复收藏是无操作，不报错
func (s *ViewerService) AddFavoriteFilm(userID, filmID int) error {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return err
	}
	film, err := s.films.FindByID(filmID)
	if err != nil {
		return err
	}
	if film == nil {
		return apperr.NotFound("电影不存在: %d", filmID)
	}
	return s.viewers.AddFavoriteFilm(viewer.ID, filmID)
}

// RemoveFavoriteFilm 取消收藏电影
func (s *ViewerService) RemoveFavoriteFilm(userID, filmID int) error {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return err
	}
	return s.viewers.RemoveFavoriteFilm(viewer.ID, filmID)
}

// ListFavoriteFilms 获取自己收藏的电影
func (s *ViewerService) ListFavoriteFilms(userID, limit, offset int) ([]*model.FavoriteFilm, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	return s.viewers.ListFavoriteFilms(viewer.ID, limit, offset)
}

// AddFavoriteAuthor 收藏作者（幂等）
func (s *ViewerService) AddFavoriteAuthor(userID, authorID int) error {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return err
	}
	author, err := s.authors.FindByID(authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return apperr.NotFound("作者不存在: %d", authorID)
	}
	return s.viewers.AddFavoriteAuthor(viewer.ID, authorID)
}

// RemoveFavoriteAuthor 取消收藏作者
func (s *ViewerService) RemoveFavoriteAuthor(userID, authorID int) error {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return err
	}
	return s.viewers.RemoveFavoriteAuthor(viewer.ID, authorID)
}

// ListFavoriteAuthors 获取自己收藏的作者
func (s *ViewerService) ListFavoriteAuthors(userID, limit, offset int) ([]*model.FavoriteAuthor, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	return s.viewers.ListFavoriteAuthors(viewer.ID, limit, offset)
}

// RateFilm 给电影评分。只创建不覆盖：已评过分返回 Duplicate。
// 并发重复提交由 (viewer, film) 唯一索引兜底
func (s *ViewerService) RateFilm(userID, filmID, score int, comment string) (*model.FilmRating, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	if !model.ValidScore(score) {
		return nil, apperr.Validation("评分必须在 %d 到 %d 之间", model.ScoreMin, model.ScoreMax)
	}
	film, err := s.films.FindByID(filmID)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperr.NotFound("电影不存在: %d", filmID)
	}

	rating := &model.FilmRating{
		ViewerID: viewer.ID,
		FilmID:   filmID,
		Score:    score,
		Comment:  comment,
	}
	if err := s.ratings.CreateFilmRating(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("已对这部电影评过分")
		}
		return nil, err
	}
	return rating, nil
}

// RateAuthor 给作者评分，规则同 RateFilm
func (s *ViewerService) RateAuthor(userID, authorID, score int, comment string) (*model.AuthorRating, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	if !model.ValidScore(score) {
		return nil, apperr.Validation("评分必须在 %d 到 %d 之间", model.ScoreMin, model.ScoreMax)
	}
	author, err := s.authors.FindByID(authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("作者不存在: %d", authorID)
	}

	rating := &model.AuthorRating{
		ViewerID: viewer.ID,
		AuthorID: authorID,
		Score:    score,
		Comment:  comment,
	}
	if err := s.ratings.CreateAuthorRating(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("已对这位作者评过分")
		}
		return nil, err
	}
	return rating, nil
}

// ListOwnFilmRatings 获取自己的电影评分
func (s *ViewerService) ListOwnFilmRatings(userID, limit, offset int) ([]*model.FilmRating, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	return s.ratings.ListFilmRatingsByViewer(viewer.ID, limit, offset)
}

// ListOwnAuthorRatings 获取自己的作者评分
func (s *ViewerService) ListOwnAuthorRatings(userID, limit, offset int) ([]*model.AuthorRating, error) {
	viewer, err := s.profileOf(userID)
	if err != nil {
		return nil, err
	}
	return s.ratings.ListAuthorRatingsByViewer(viewer.ID, limit, offset)
}

// ListViewers 所有观众档案（管理员操作，路由层已拦角色）
func (s *ViewerService) ListViewers(limit, offset int) ([]*model.Viewer, int64, error) {
	return s.viewers.List(limit, offset)
}

// GetViewer 按 ID 获取任意观众档案（管理员操作）
func (s *ViewerService) GetViewer(id int) (*model.Viewer, error) {
	viewer, err := s.viewers.FindByID(id)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, apperr.NotFound("观众档案不存在: %d", id)
	}
	return viewer, nil
}
