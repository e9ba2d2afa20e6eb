package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/novahub/pkg/context"
	"github.com/yeisme/novahub/pkg/internal/auth"
	"github.com/yeisme/novahub/pkg/internal/model"
	"github.com/yeisme/novahub/pkg/internal/storage/db"
	nlog "github.com/yeisme/novahub/pkg/log"
)

// ErrBadCredentials 用户名不存在或口令错误，对外不区分.
var ErrBadCredentials = errors.New("service: bad credentials")

// AuthService 账号注册、登录与身份解析.
type AuthService struct {
	dbClient    *db.Client
	emailDomain string
}

// NewAuthService 从请求上下文构造.
func NewAuthService(ctx context.Context, emailDomain string) *AuthService {
	return &AuthService{
		dbClient:    ctxPkg.GetDBClient(ctx),
		emailDomain: emailDomain,
	}
}

// Register 注册新用户：合成内部邮箱、散列口令、写入档案.
// 用户名冲突由唯一索引拦截，原样返回给调用方做 flash 提示.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        fmt.Sprintf("%s@%s", username, s.emailDomain),
		PasswordHash: hash,
	}

	if err := s.dbClient.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	nlog.Logger().Info().Str("username", username).Msg("user registered")

	return &user, nil
}

// Login 校验用户名与口令，成功返回用户档案. 用户缺失和口令不符
// 都折叠为 ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	var user model.User

	err := s.dbClient.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			nlog.Logger().Warn().Err(err).Msg("login lookup failed")
		}

		return nil, ErrBadCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}

	return &user, nil
}

// ResolveUser 按用户 ID 解析身份. 档案缺失与后端瞬时失败都按
// 未认证处理：调用方唯一需要面对的失败形态就是 nil.
func (s *AuthService) ResolveUser(ctx context.Context, userID string) *model.User {
	if userID == "" || s.dbClient == nil {
		return nil
	}

	var user model.User

	if err := s.dbClient.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			nlog.Logger().Warn().Err(err).Msg("resolve user failed, treating as anonymous")
		}

		return nil
	}

	return &user
}
