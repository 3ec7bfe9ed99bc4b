package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/handler"
	"github.com/user/cinecat/internal/middleware"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/repository"
	"gorm.io/gorm"
)

type testApp struct {
	engine *gin.Engine
	repos  *repository.Repositories
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		AppSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	engine := gin.New()
	RegisterValidators()
	h := handler.NewHandler(repos, cfg)
	RegisterRoutes(engine, h)

	return &testApp{engine: engine, repos: repos, cfg: cfg}
}

// do 发起一次请求，token 非空时带 Bearer 头
func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// signupAndLogin 注册一个观众并返回可用 token
func (a *testApp) signupAndLogin(t *testing.T, email, username string) string {
	t.Helper()
	w := a.do("POST", "/api/auth/signup", "", gin.H{
		"email": email, "username": username, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do("POST", "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// adminToken 直接在库里造一个管理员并签 token
func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	admin, err := a.repos.User.Create(nil, "admin@example.com", "admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)
	token, err := middleware.GenerateToken(admin.ID, admin.Email, admin.Role, a.cfg.AppSecret, a.cfg.JWTExpiry)
	require.NoError(t, err)
	return token
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	w := app.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupIgnoresRoleField(t *testing.T) {
	app := newTestApp(t)

	// 客户端夹带 role=admin，服务端当没看见
	w := app.do("POST", "/api/auth/signup", "", gin.H{
		"email": "a@example.com", "username": "alice", "password": "secret123",
		"role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user, err := app.repos.User.FindByEmail("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.RoleViewer, user.Role)
}

func TestFilmListAnonymous(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.repos.Film.Create(&model.Film{
		Title: "Dune", ReleaseDate: "2021-09-15", Status: model.StatusReleased,
	}))

	// 匿名列表放行
	w := app.do("GET", "/api/films", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 年份筛选要求登录
	w = app.do("GET", "/api/films?year=2021", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录后同一请求放行
	token := app.signupAndLogin(t, "a@example.com", "alice")
	w = app.do("GET", "/api/films?year=2021", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestFilmDetailRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.repos.Film.Create(&model.Film{Title: "Dune", Status: model.StatusReleased}))

	w := app.do("GET", "/api/films/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.signupAndLogin(t, "a@example.com", "alice")
	w = app.do("GET", "/api/films/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdminRoutesForbiddenForViewer(t *testing.T) {
	app := newTestApp(t)
	token := app.signupAndLogin(t, "a@example.com", "alice")

	w := app.do("POST", "/api/films", token, gin.H{"title": "Dune", "status": "released"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do("GET", "/api/admin/viewers", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreateAndUpdateFilm(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	w := app.do("POST", "/api/films", token, gin.H{
		"title": "Dune", "status": "released", "release_date": "2021-09-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 非法枚举被校验器挡下
	w = app.do("POST", "/api/films", token, gin.H{"title": "Bad", "status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 更新入参带未知字段：严格解码拒绝
	w = app.do("PUT", "/api/films/1", token, gin.H{"title": "Dune 2", "bogus": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do("PUT", "/api/films/1", token, gin.H{"title": "Dune 2"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	film, err := app.repos.Film.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Dune 2", film.Title)
}

func TestRatingFlow(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.repos.Film.Create(&model.Film{Title: "Dune", Status: model.StatusReleased}))
	token := app.signupAndLogin(t, "a@example.com", "alice")

	w := app.do("POST", "/api/films/1/rating", token, gin.H{"score": 5, "comment": "杰作"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 重复评分冲突
	w = app.do("POST", "/api/films/1/rating", token, gin.H{"score": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 越界分数
	w = app.do("POST", "/api/films/1/rating", token, gin.H{"score": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 评分列表能看到自己的那一条
	w = app.do("GET", "/api/me/ratings/films", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "杰作")
}

func TestFavoriteFlow(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.repos.Film.Create(&model.Film{Title: "Dune", Status: model.StatusReleased}))
	token := app.signupAndLogin(t, "a@example.com", "alice")

	w := app.do("POST", "/api/me/favorites/films/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// 重复收藏不是错误
	w = app.do("POST", "/api/me/favorites/films/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do("GET", "/api/me/favorites/films", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do("DELETE", "/api/me/favorites/films/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 收藏不存在的电影
	w = app.do("POST", "/api/me/favorites/films/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorDeleteConflictOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t)

	w := app.do("POST", "/api/films", token, gin.H{"title": "Dune", "status": "released"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = app.do("POST", "/api/authors", token, gin.H{"name": "Denis Vil"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do("PUT", "/api/films/1/authors/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 还有作品关联时删除作者：409
	w = app.do("DELETE", "/api/authors/1", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do("DELETE", "/api/films/1/authors/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do("DELETE", "/api/authors/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.signupAndLogin(t, "a@example.com", "alice")

	w := app.do("GET", "/api/me/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do("PUT", "/api/me/profile", token, gin.H{"bio": "喜欢科幻片"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do("GET", "/api/me/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "喜欢科幻片")

	// 未登录禁入
	w = app.do("GET", "/api/me/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminViewerListing(t *testing.T) {
	app := newTestApp(t)
	adminTok := app.adminToken(t)
	app.signupAndLogin(t, "a@example.com", "alice")
	app.signupAndLogin(t, "b@example.com", "bob")

	w := app.do("GET", "/api/admin/viewers", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Data.Total)

	w = app.do("GET", "/api/admin/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	app := newTestApp(t)
	for _, token := range []string{"garbage", fmt.Sprintf("%s.x.y", "eyJ")} {
		w := app.do("GET", "/api/me/profile", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
