package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/cinecat/internal/handler"
	"github.com/user/cinecat/internal/middleware"
	"github.com/user/cinecat/internal/model"
)

// RegisterValidators 注册枚举字段的自定义校验器
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("filmstatus", func(fl validator.FieldLevel) bool {
			return model.ValidStatus(fl.Field().String())
		})
		v.RegisterValidation("ratingbucket", func(fl validator.FieldLevel) bool {
			return model.ValidBucket(fl.Field().String())
		})
	}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := h.Config.AppSecret

	api := r.Group("/api")

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}

	// ==================== 公开目录（登录可选）====================
	public := api.Group("")
	public.Use(middleware.OptionalAuth(secret))
	{
		// 匿名可列表；按年份筛选在 handler 里要求登录
		public.GET("/films", h.ListFilms)
		public.GET("/authors", h.ListAuthors)
	}

	// ==================== 需要登录 ====================
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(secret))
	{
		authed.GET("/films/:id", h.GetFilm)
		authed.GET("/authors/:id", h.GetAuthor)

		// 评分：只创建不覆盖
		authed.POST("/films/:id/rating", h.RateFilm)
		authed.POST("/authors/:id/rating", h.RateAuthor)

		// 观众自助
		me := authed.Group("/me")
		{
			me.GET("/profile", h.MyProfile)
			me.PUT("/profile", h.UpdateMyProfile)

			me.GET("/favorites/films", h.MyFavoriteFilms)
			me.POST("/favorites/films/:id", h.AddFavoriteFilm)
			me.DELETE("/favorites/films/:id", h.RemoveFavoriteFilm)

			me.GET("/favorites/authors", h.MyFavoriteAuthors)
			me.POST("/favorites/authors/:id", h.AddFavoriteAuthor)
			me.DELETE("/favorites/authors/:id", h.RemoveFavoriteAuthor)

			me.GET("/ratings/films", h.MyFilmRatings)
			me.GET("/ratings/authors", h.MyAuthorRatings)
		}
	}

	// ==================== 管理员 ====================
	admin := api.Group("")
	admin.Use(middleware.RequireAuth(secret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/films", h.CreateFilm)
		admin.PUT("/films/:id", h.UpdateFilm)
		admin.DELETE("/films/:id", h.DeleteFilm)
		admin.PUT("/films/:id/authors/:authorID", h.LinkAuthor)
		admin.DELETE("/films/:id/authors/:authorID", h.UnlinkAuthor)

		admin.POST("/authors", h.CreateAuthor)
		admin.PUT("/authors/:id", h.UpdateAuthor)
		admin.DELETE("/authors/:id", h.DeleteAuthor)

		admin.GET("/admin/viewers", h.AdminListViewers)
		admin.GET("/admin/viewers/:id", h.AdminGetViewer)
		admin.GET("/admin/users", h.AdminListUsers)
	}
}
