package service

import (
	"errors"

	"github.com/user/cinecat/internal/apperr"
	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/middleware"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/repository"
	"gorm.io/gorm"
)

// AccountService 账号注册/登录
type AccountService struct {
	repos *repository.Repositories
	cfg   *config.Config
}

// NewAccountService 创建账号服务
func NewAccountService(repos *repository.Repositories, cfg *config.Config) *AccountService {
	return &AccountService{repos: repos, cfg: cfg}
}

// SignupInput 注册入参。没有 role 字段：客户端传什么都到不了这里，
// 角色在服务端统一落默认值
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// Signup 自助注册：创建账号和观众档案（同一事务），角色强制为 viewer
func (s *AccountService) Signup(in SignupInput) (*model.User, *model.Viewer, error) {
	if existing, err := s.repos.User.FindByEmail(in.Email); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, apperr.Duplicate("该邮箱已被注册")
	}
	if existing, err := s.repos.User.FindByUsername(in.Username); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, apperr.Duplicate("该用户名已被占用")
	}

	var user *model.User
	var viewer *model.Viewer
	err := s.repos.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.repos.User.Create(tx, in.Email, in.Username, in.Password, model.DefaultRole())
		if err != nil {
			return err
		}

		viewer = &model.Viewer{UserID: user.ID}
		return s.repos.Viewer.Create(tx, viewer)
	})
	if err != nil {
		// 并发注册撞唯一约束：预检查放过了，数据库是最终防线
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperr.Duplicate("邮箱或用户名已被注册")
		}
		return nil, nil, err
	}

	return user, viewer, nil
}

// Login 校验凭据并签发 JWT
func (s *AccountService) Login(email, password string) (string, *model.User, error) {
	user, err := s.repos.User.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.repos.User.CheckPassword(user, password) {
		return "", nil, apperr.Auth("邮箱或密码错误")
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, s.cfg.AppSecret, s.cfg.JWTExpiry)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
