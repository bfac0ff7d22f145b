package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	GetAllUsers(page, pageSize int, search, grade, status string) ([]models.User, int64, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id uint) error
	CountUsers() (int64, error)
}

// UserService 提供乐园会员相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的会员服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllUsers 获取所有会员，支持分页、搜索、等级和状态过滤
func (s *UserService) GetAllUsers(page, pageSize int, search, grade, status string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.DB.Model(&models.User{})

	// 如果有搜索关键词，添加搜索条件
	if search != "" {
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// 等级过滤（大小写敏感，"vip"与"VIP"视为不同等级）
	if grade != "" && grade != FilterAll {
		query = query.Where("grade = ?", grade)
	}

	if status != "" && status != FilterAll {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// 2 GetUserByID 根据ID获取会员
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("会员不存在")
		}
		return nil, err
	}
	return &user, nil
}

// 3 CreateUser 创建新会员
func (s *UserService) CreateUser(user *models.User) error {
	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("邮箱已被使用")
	}

	if user.Grade == "" {
		user.Grade = models.GradeNormal
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	return s.DB.Create(user).Error
}

// 4 UpdateUser 更新会员信息（局部更新，仅覆盖提供的字段）
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新邮箱，需要检查唯一性
	if email, ok := updates["email"].(string); ok && email != user.Email {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("email = ? AND id != ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("邮箱已被其他会员使用")
		}
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// 5 DeleteUser 删除会员
func (s *UserService) DeleteUser(id uint) error {
	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("会员不存在")
	}
	return nil
}

// 6 CountUsers 统计会员总数
func (s *UserService) CountUsers() (int64, error) {
	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
