package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/logger"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/utils"
)

// InterfaceAdminService defines the admin service interface
type InterfaceAdminService interface {
	GetAllAdmins(page, pageSize int, search string) ([]models.Admin, int64, error)
	GetAdminByID(id uint) (*models.Admin, error)
	Register(username, email, password, code string) (*models.Admin, error)
	SendEmailCode(email string) error
	VerifyEmailCode(email, code string) (bool, error)
	UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error)
	DeleteAdmin(id uint) error
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员账号相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// 1 GetAllAdmins 获取所有管理员，支持分页和搜索
func (s *AdminService) GetAllAdmins(page, pageSize int, search string) ([]models.Admin, int64, error) {
	var admins []models.Admin
	var total int64

	query := s.DB.Model(&models.Admin{})

	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

// 2 GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("管理员不存在")
		}
		return nil, err
	}
	return &admin, nil
}

// 3 Register 注册新管理员账号，需要先通过邮箱验证码校验
func (s *AdminService) Register(username, email, password, code string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.New("用户名、邮箱和密码不能为空")
	}

	ok, err := s.VerifyEmailCode(email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("邮箱验证码错误或已过期")
	}

	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("用户名已存在")
	}

	if err := s.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("邮箱已被使用")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, errors.New("密码加密失败")
	}

	admin := &models.Admin{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     "admin",
		Status:   "active",
	}
	if err := s.DB.Create(admin).Error; err != nil {
		return nil, err
	}

	return admin, nil
}

// 4 SendEmailCode 生成并缓存邮箱验证码
// 实际邮件投递由邮件网关消费日志队列完成
func (s *AdminService) SendEmailCode(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("邮箱不能为空")
	}

	code := utils.RandomDigitCode(6)
	if err := s.Redis.CacheEmailCode(email, code); err != nil {
		return err
	}

	logger.Info("[EMAIL] 已交接注册验证码邮件 -> %s", email)
	return nil
}

// 5 VerifyEmailCode 校验邮箱验证码
func (s *AdminService) VerifyEmailCode(email, code string) (bool, error) {
	if email == "" || code == "" {
		return false, nil
	}
	return s.Redis.VerifyEmailCode(email, code)
}

// 6 UpdateAdmin 更新管理员信息，密码更新时重新哈希
func (s *AdminService) UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	if password, ok := updates["password"].(string); ok {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, errors.New("密码加密失败")
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetAdminByID(id)
}

// 7 DeleteAdmin 删除管理员，至少保留一个账号
func (s *AdminService) DeleteAdmin(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return errors.New("至少保留一个管理员账号")
	}

	result := s.DB.Delete(&models.Admin{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("管理员不存在")
	}
	return nil
}

// 8 EnsureDefaultAdmin 确保存在默认管理员账号，首次启动时创建
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Username: "admin",
		Email:    s.Config.DefaultAdminEmail,
		Password: hashedPassword,
		Role:     "system_admin",
		Status:   "active",
	}
	if err := s.DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("已创建默认管理员账号: %s", admin.Email)
	return nil
}
