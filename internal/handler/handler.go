package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/repository"
	"github.com/user/cinecat/internal/service"
	"github.com/user/cinecat/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories
	Config   *config.Config
	Accounts *service.AccountService
	Catalog  *service.CatalogService
	Viewers  *service.ViewerService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:    repos,
		Config:   cfg,
		Accounts: service.NewAccountService(repos, cfg),
		Catalog:  service.NewCatalogService(repos),
		Viewers:  service.NewViewerService(repos),
	}
}

// parsePage 解析分页参数，page 从 1 开始
func parsePage(c *gin.Context) (page, pageSize, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}

// bindStrict 严格绑定 JSON：未知字段直接拒绝（更新入参逐字段列出，
// 不接受模型外的键），再走一遍 binding 校验
func bindStrict(c *gin.Context, obj interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}

// ==================== 认证 ====================

// signupRequest 注册入参。刻意没有 role 字段：
// 客户端带上 role 也会被忽略，角色永远在服务端落默认值
type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=20"`
	Password string `json:"password" binding:"required,min=6"`
}

// Signup 自助注册
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	user, viewer, err := h.Accounts.Signup(service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, gin.H{"user": user, "viewer": viewer})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录，签发 JWT
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	token, user, err := h.Accounts.Login(req.Email, req.Password)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	// 同时下发 Cookie，浏览器端无需自己带 Header
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.Success(c, gin.H{"token": token, "user": user})
}
