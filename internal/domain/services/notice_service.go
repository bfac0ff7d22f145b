package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// InterfaceNoticeService defines the notice service interface
type InterfaceNoticeService interface {
	GetAllNotices(page, pageSize int, search, category, status string) ([]models.Notice, int64, error)
	GetNoticeByID(id uint, countView bool) (*models.Notice, error)
	CreateNotice(notice *models.Notice) error
	UpdateNotice(id uint, updates map[string]interface{}) (*models.Notice, error)
	PublishNotice(id uint) (*models.Notice, error)
	DeleteNotice(id uint) error
	GetAllFAQs(category string) ([]models.FAQ, error)
	CreateFAQ(faq *models.FAQ) error
	UpdateFAQ(id uint, updates map[string]interface{}) (*models.FAQ, error)
	DeleteFAQ(id uint) error
}

// NoticeService 提供官网公告与FAQ相关的服务
type NoticeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNoticeService 创建一个新的公告服务
func NewNoticeService(db *gorm.DB, cfg *config.Config) InterfaceNoticeService {
	return &NoticeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllNotices 获取所有公告，支持分页、搜索、分类和状态过滤
func (s *NoticeService) GetAllNotices(page, pageSize int, search, category, status string) ([]models.Notice, int64, error) {
	var notices []models.Notice
	var total int64

	query := s.DB.Model(&models.Notice{})

	if search != "" {
		query = query.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if category != "" && category != FilterAll {
		query = query.Where("category = ?", category)
	}

	if status != "" && status != FilterAll {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&notices).Error; err != nil {
		return nil, 0, err
	}

	return notices, total, nil
}

// 2 GetNoticeByID 根据ID获取公告，countView为true时浏览数加一
func (s *NoticeService) GetNoticeByID(id uint, countView bool) (*models.Notice, error) {
	var notice models.Notice
	if err := s.DB.First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("公告不存在")
		}
		return nil, err
	}

	if countView {
		if err := s.DB.Model(&notice).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			return nil, err
		}
		notice.Views++
	}

	return &notice, nil
}

// 3 CreateNotice 创建公告，默认保存为草稿
func (s *NoticeService) CreateNotice(notice *models.Notice) error {
	if notice.Title == "" {
		return errors.New("公告标题不能为空")
	}
	if notice.Content == "" {
		return errors.New("公告内容不能为空")
	}

	if notice.Status == "" {
		notice.Status = models.NoticeStatusDraft
	}
	if notice.Status == models.NoticeStatusPublished && notice.PublishedAt == "" {
		notice.PublishedAt = time.Now().Format(DeliveryTimeLayout)
	}

	return s.DB.Create(notice).Error
}

// 4 UpdateNotice 更新公告
func (s *NoticeService) UpdateNotice(id uint, updates map[string]interface{}) (*models.Notice, error) {
	notice, err := s.GetNoticeByID(id, false)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(notice).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetNoticeByID(id, false)
}

// 5 PublishNotice 发布公告并记录发布时间
func (s *NoticeService) PublishNotice(id uint) (*models.Notice, error) {
	notice, err := s.GetNoticeByID(id, false)
	if err != nil {
		return nil, err
	}

	if notice.Status == models.NoticeStatusPublished {
		return nil, errors.New("公告已发布")
	}

	if err := s.DB.Model(notice).Updates(map[string]interface{}{
		"status":       models.NoticeStatusPublished,
		"published_at": time.Now().Format(DeliveryTimeLayout),
	}).Error; err != nil {
		return nil, err
	}
	return s.GetNoticeByID(id, false)
}

// 6 DeleteNotice 删除公告
func (s *NoticeService) DeleteNotice(id uint) error {
	result := s.DB.Delete(&models.Notice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("公告不存在")
	}
	return nil
}

// 7 GetAllFAQs 获取FAQ列表，按排序权重和ID升序
func (s *NoticeService) GetAllFAQs(category string) ([]models.FAQ, error) {
	var faqs []models.FAQ
	query := s.DB.Model(&models.FAQ{})
	if category != "" && category != FilterAll {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("sort_order ASC, id ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// 8 CreateFAQ 创建FAQ条目
func (s *NoticeService) CreateFAQ(faq *models.FAQ) error {
	if faq.Question == "" {
		return errors.New("问题不能为空")
	}
	if faq.Answer == "" {
		return errors.New("答案不能为空")
	}
	return s.DB.Create(faq).Error
}

// 9 UpdateFAQ 更新FAQ条目
func (s *NoticeService) UpdateFAQ(id uint, updates map[string]interface{}) (*models.FAQ, error) {
	var faq models.FAQ
	if err := s.DB.First(&faq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("FAQ不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&faq).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// 10 DeleteFAQ 删除FAQ条目
func (s *NoticeService) DeleteFAQ(id uint) error {
	result := s.DB.Delete(&models.FAQ{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("FAQ不存在")
	}
	return nil
}
