package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinecat/internal/utils"
)

// ==================== 管理后台 ====================

// AdminListViewers 所有观众档案列表（管理员）
func (h *Handler) AdminListViewers(c *gin.Context) {
	page, pageSize, limit, offset := parsePage(c)

	viewers, total, err := h.Viewers.ListViewers(limit, offset)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, utils.PageData{Items: viewers, Total: total, Page: page, PageSize: pageSize})
}

// AdminGetViewer 按 ID 查看任意观众档案（管理员）
func (h *Handler) AdminGetViewer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "非法的观众 ID")
		return
	}

	viewer, err := h.Viewers.GetViewer(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, viewer)
}

// AdminListUsers 所有账号列表（管理员）
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, users)
}
