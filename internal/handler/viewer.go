package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinecat/internal/middleware"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/utils"
)

// MyProfile 获取自己的观众档案
func (h *Handler) MyProfile(c *gin.Context) {
	viewer, err := h.Viewers.GetOwnProfile(middleware.GetUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, viewer)
}

// UpdateMyProfile 更新自己的观众档案，未知字段直接拒绝
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var upd model.ViewerUpdate
	if err := bindStrict(c, &upd); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	viewer, err := h.Viewers.UpdateOwnProfile(middleware.GetUserID(c), &upd)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, viewer)
}

// MyFavoriteFilms 自己收藏的电影列表
func (h *Handler) MyFavoriteFilms(c *gin.Context) {
	_, _, limit, offset := parsePage(c)
	favorites, err := h.Viewers.ListFavoriteFilms(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, favorites)
}

// AddFavoriteFilm 收藏电影（幂等）
func (h *Handler) AddFavoriteFilm(c *gin.Context) {
	filmID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	if err := h.Viewers.AddFavoriteFilm(middleware.GetUserID(c), filmID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

// RemoveFavoriteFilm 取消收藏电影
func (h *Handler) RemoveFavoriteFilm(c *gin.Context) {
	filmID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	if err := h.Viewers.RemoveFavoriteFilm(middleware.GetUserID(c), filmID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

// MyFavoriteAuthors 自己收藏的作者列表
func (h *Handler) MyFavoriteAuthors(c *gin.Context) {
	_, _, limit, offset := parsePage(c)
	favorites, err := h.Viewers.ListFavoriteAuthors(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, favorites)
}

// AddFavoriteAuthor 收藏作者（幂等）
func (h *Handler) AddFavoriteAuthor(c *gin.Context) {
	authorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	if err := h.Viewers.AddFavoriteAuthor(middleware.GetUserID(c), authorID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

// RemoveFavoriteAuthor 取消收藏作者
func (h *Handler) RemoveFavoriteAuthor(c *gin.Context) {
	authorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	if err := h.Viewers.RemoveFavoriteAuthor(middleware.GetUserID(c), authorID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

type rateRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// RateFilm 给电影评分（只创建，重复评分返回 409）
func (h *Handler) RateFilm(c *gin.Context) {
	filmID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	rating, err := h.Viewers.RateFilm(middleware.GetUserID(c), filmID, req.Score, req.Comment)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, rating)
}

// RateAuthor 给作者评分（只创建，重复评分返回 409）
func (h *Handler) RateAuthor(c *gin.Context) {
	authorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	rating, err := h.Viewers.RateAuthor(middleware.GetUserID(c), authorID, req.Score, req.Comment)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, rating)
}

// MyFilmRatings 自己的电影评分列表
func (h *Handler) MyFilmRatings(c *gin.Context) {
	_, _, limit, offset := parsePage(c)
	ratings, err := h.Viewers.ListOwnFilmRatings(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, ratings)
}

// MyAuthorRatings 自己的作者评分列表
func (h *Handler) MyAuthorRatings(c *gin.Context) {
	_, _, limit, offset := parsePage(c)
	ratings, err := h.Viewers.ListOwnAuthorRatings(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, ratings)
}
