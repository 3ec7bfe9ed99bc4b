package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinecat/internal/middleware"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/utils"
)

// ListFilms 电影列表。匿名可访问；带 year 参数时要求登录
func (h *Handler) ListFilms(c *gin.Context) {
	year := c.Query("year")
	authenticated := middleware.GetUserID(c) > 0
	page, pageSize, limit, offset := parsePage(c)

	films, total, err := h.Catalog.ListFilms(year, authenticated, limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, utils.PageData{Items: films, Total: total, Page: page, PageSize: pageSize})
}

// GetFilm 电影详情（需要登录）
func (h *Handler) GetFilm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	film, err := h.Catalog.GetFilm(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, film)
}

type createFilmRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ReleaseDate  string `json:"release_date"`
	RatingBucket string `json:"rating_bucket" binding:"omitempty,ratingbucket"`
	Status       string `json:"status" binding:"required,filmstatus"`
}

// CreateFilm 创建电影（管理员）
func (h *Handler) CreateFilm(c *gin.Context) {
	var req createFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	film := &model.Film{
		Title:        req.Title,
		Description:  req.Description,
		ReleaseDate:  req.ReleaseDate,
		RatingBucket: req.RatingBucket,
		Status:       req.Status,
		Origin:       model.OriginManual,
	}
	if err := h.Catalog.CreateFilm(film); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, film)
}

// UpdateFilm 更新电影（管理员）。入参字段显式列出，未知字段直接拒绝
func (h *Handler) UpdateFilm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	var upd model.FilmUpdate
	if err := bindStrict(c, &upd); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	film, err := h.Catalog.UpdateFilm(id, &upd)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, film)
}

// DeleteFilm 删除电影（管理员）
func (h *Handler) DeleteFilm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}

	if err := h.Catalog.DeleteFilm(id); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

// LinkAuthor 把作者挂到电影（管理员，幂等）
func (h *Handler) LinkAuthor(c *gin.Context) {
	filmID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}
	authorID, err := strconv.Atoi(c.Param("authorID"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	if err := h.Catalog.LinkAuthor(filmID, authorID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}

// UnlinkAuthor 解除电影与作者的关联（管理员）
func (h *Handler) UnlinkAuthor(c *gin.Context) {
	filmID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的电影 ID")
		return
	}
	authorID, err := strconv.Atoi(c.Param("authorID"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	if err := h.Catalog.UnlinkAuthor(filmID, authorID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}
