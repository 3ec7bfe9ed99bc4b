package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/utils"
)

// ListAuthors 作者列表，匿名可访问
func (h *Handler) ListAuthors(c *gin.Context) {
	page, pageSize, limit, offset := parsePage(c)

	authors, total, err := h.Catalog.ListAuthors(limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, utils.PageData{Items: authors, Total: total, Page: page, PageSize: pageSize})
}

// GetAuthor 作者详情（需要登录）
func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	author, err := h.Catalog.GetAuthor(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, author)
}

type createAuthorRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Birthdate *time.Time `json:"birthdate"`
}

// CreateAuthor 创建作者（管理员）
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	author := &model.Author{
		Name:      req.Name,
		Email:     req.Email,
		Birthdate: req.Birthdate,
		Origin:    model.OriginManual,
	}
	if err := h.Catalog.CreateAuthor(author); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, author)
}

// UpdateAuthor 更新作者（管理员），未知字段直接拒绝
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	var upd model.AuthorUpdate
	if err := bindStrict(c, &upd); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	author, err := h.Catalog.UpdateAuthor(id, &upd)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, author)
}

// DeleteAuthor 删除作者（管理员）。仍关联电影时返回 409
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的作者 ID")
		return
	}

	if err := h.Catalog.DeleteAuthor(id); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, nil)
}
