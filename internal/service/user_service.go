package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nfl-fantasy/backend/config"
	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

// ── 用户管理业务错误 ──

var (
	ErrUserSelfRoleChange = errors.New("不能修改自己的角色")
	ErrUserNotLocked      = errors.New("账号未被锁定")
)

// UserService 用户管理业务接口（管理员）
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	// Unlock 解除因连续登录失败导致的锁定，并清零失败次数
	Unlock(ctx context.Context, id string, callerID string) error
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error
	ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error)
	// EnsureBootstrapAdmin 库中没有任何 admin 时按配置创建（或提升）首个管理员，返回是否发生了变更
	EnsureBootstrapAdmin(ctx context.Context, admin config.BootstrapAdmin) (bool, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filter := repository.UserListFilter{
		Role:    req.Role,
		Status:  req.Status,
		Keyword: req.Keyword,
	}

	users, total, err := s.repo.User.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Unlock ──────────────────────

func (s *userService) Unlock(ctx context.Context, id string, callerID string) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if user.Status != UserStatusLocked {
		return ErrUserNotLocked
	}

	user.Status = UserStatusActive
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.StampUpdate(callerID)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("解锁用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("用户已解锁", zap.String("id", id), zap.String("by", callerID))
	return nil
}

// ────────────────────── AssignRole ──────────────────────

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error {
	if id == callerID {
		return ErrUserSelfRoleChange
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	user.Role = req.Role
	user.StampUpdate(callerID)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("分配角色失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, id string, callerID string) (*dto.ResetPasswordResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 临时密码同样满足注册时的强度规则
	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.StampUpdate(callerID)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ────────────────────── EnsureBootstrapAdmin ──────────────────────

func (s *userService) EnsureBootstrapAdmin(ctx context.Context, admin config.BootstrapAdmin) (bool, error) {
	if admin.Email == "" {
		return false, nil
	}

	_, admins, err := s.repo.User.List(ctx, repository.UserListFilter{Role: RoleAdmin}, 0, 1)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	// 邮箱已注册则直接提升为 admin，不改动其密码
	existing, err := s.repo.User.GetByEmail(ctx, admin.Email)
	if err == nil {
		existing.Role = RoleAdmin
		if err := s.repo.User.Update(ctx, existing); err != nil {
			return false, err
		}
		s.logger.Info("已将现有用户提升为管理员", zap.String("email", admin.Email))
		return true, nil
	}
	if !apperrors.IsNotFound(err) {
		return false, err
	}

	if !validPassword(admin.Password) {
		return false, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := &model.User{
		Name:         admin.Name,
		Email:        admin.Email,
		Alias:        admin.Alias,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		Status:       UserStatusActive,
		ProfileImage: defaultProfileImage,
		Language:     defaultLanguage,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return false, err
	}

	s.logger.Info("已创建初始管理员", zap.String("email", admin.Email), zap.String("alias", admin.Alias))
	return true, nil
}

// ── 内部辅助方法 ──

func (s *userService) get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// generateTempPassword 生成临时密码，保证至少包含一个小写字母、大写字母和数字
// length 限定在 8-12 之间
func generateTempPassword(length int) (string, error) {
	const lower = "abcdefghijkmnpqrstuvwxyz"
	const upper = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = lower + upper + digits

	if length < 8 || length > 12 {
		length = 10
	}

	result := make([]byte, length)
	for i, set := range []string{lower, upper, digits} {
		c, err := randomByte(set)
		if err != nil {
			return "", err
		}
		result[i] = c
	}

	// 剩余位随机填充
	for i := 3; i < length; i++ {
		c, err := randomByte(all)
		if err != nil {
			return "", err
		}
		result[i] = c
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}

func randomByte(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
