package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/logger"
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	GetAllAlerts(filter AlertFilter, page, pageSize int) ([]models.Alert, models.AlertStats, int64, error)
	GetAlertByID(id string) (*models.Alert, error)
	CreateAlert(input *AlertInput) (*models.Alert, error)
	UpdateAlert(id string, input *AlertInput) (*models.Alert, error)
	DeleteAlert(id string) error
	ResendAlert(id string) (*models.Alert, error)
	BulkResend(ids []string) error
	BulkDelete(ids []string) error
	CancelAlert(id string) error
	GetStats() (models.AlertStats, error)
}

// AlertInput 创建/编辑通知的输入参数
type AlertInput struct {
	Title           string
	Content         string
	Type            string
	Recipient       string
	RecipientGrade  string
	DeliveryMethod  string
	SendImmediately bool
	DeliveryDate    string // 格式 "2006-01-02"
	DeliveryClock   string // 格式 "15:04"
	Priority        string
	ImageURL        string
	ActionURL       string
	Tags            []string
}

// NotificationService 提供通知生命周期管理服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllAlerts 获取通知列表
// 先按接收顺序加载全量，去重后统计状态分布，再按条件筛选并分页
func (s *NotificationService) GetAllAlerts(filter AlertFilter, page, pageSize int) ([]models.Alert, models.AlertStats, int64, error) {
	var alerts []models.Alert
	if err := s.DB.Order("created_at ASC, id ASC").Find(&alerts).Error; err != nil {
		return nil, models.AlertStats{}, 0, err
	}

	deduped := DedupeAlerts(alerts)
	stats := ComputeAlertStats(deduped)
	filtered := FilterAlerts(deduped, filter)
	total := int64(len(filtered))

	if pageSize > 0 {
		filtered = PaginateAlerts(filtered, page, pageSize)
	}

	return filtered, stats, total, nil
}

// 2 GetAlertByID 根据ID获取通知
func (s *NotificationService) GetAlertByID(id string) (*models.Alert, error) {
	var alert models.Alert
	if err := s.DB.First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("通知不存在")
		}
		return nil, err
	}
	return &alert, nil
}

// 3 CreateAlert 创建新通知
// 立即发送的通知直接进入sent状态，预约发送的进入scheduled状态
func (s *NotificationService) CreateAlert(input *AlertInput) (*models.Alert, error) {
	if input.Title == "" || input.Content == "" {
		return nil, errors.New("通知标题和内容不能为空")
	}

	now := time.Now()
	deliveryTime := ComposeDeliveryTime(input.SendImmediately, input.DeliveryDate, input.DeliveryClock, now)

	status := models.AlertStatusSent
	scheduledAt := ""
	if !input.SendImmediately {
		parsed, err := time.ParseInLocation(DeliveryTimeLayout, deliveryTime, time.Local)
		if err != nil {
			return nil, errors.New("发送时间格式无效")
		}
		if parsed.Before(now) {
			return nil, errors.New("预约发送时间不能早于当前时间")
		}
		status = models.AlertStatusScheduled
		scheduledAt = deliveryTime
	}

	// 指定等级时解析目标用户，目录加载失败必须显式报错而不是静默置空
	userIDs, err := s.resolveRecipientIDs(input.Recipient, input.RecipientGrade)
	if err != nil {
		return nil, err
	}

	alert := &models.Alert{
		ID:             newAlertID(now),
		Title:          input.Title,
		Content:        input.Content,
		Type:           input.Type,
		Recipient:      input.Recipient,
		RecipientGrade: input.RecipientGrade,
		UserIDs:        userIDs,
		DeliveryMethod: input.DeliveryMethod,
		DeliveryTime:   deliveryTime,
		ScheduledAt:    scheduledAt,
		Status:         status,
		Priority:       input.Priority,
		ImageURL:       input.ImageURL,
		ActionURL:      input.ActionURL,
		Tags:           input.Tags,
	}

	if err := s.DB.Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// 4 UpdateAlert 编辑通知
// 仅预约中和失败的通知允许编辑；发送时间根据输入重新计算；ID和创建时间不变
func (s *NotificationService) UpdateAlert(id string, input *AlertInput) (*models.Alert, error) {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	if !alert.Editable() {
		return nil, errors.New("已发送的通知不能修改")
	}

	if input.Title == "" || input.Content == "" {
		return nil, errors.New("通知标题和内容不能为空")
	}

	deliveryTime := ComposeDeliveryTime(input.SendImmediately, input.DeliveryDate, input.DeliveryClock, time.Now())
	if !input.SendImmediately {
		if _, err := time.ParseInLocation(DeliveryTimeLayout, deliveryTime, time.Local); err != nil {
			return nil, errors.New("发送时间格式无效")
		}
	}

	userIDs, err := s.resolveRecipientIDs(input.Recipient, input.RecipientGrade)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":           input.Title,
		"content":         input.Content,
		"type":            input.Type,
		"recipient":       input.Recipient,
		"recipient_grade": input.RecipientGrade,
		"user_ids":        userIDs,
		"delivery_method": input.DeliveryMethod,
		"delivery_time":   deliveryTime,
		"priority":        input.Priority,
		"image_url":       input.ImageURL,
		"action_url":      input.ActionURL,
		"tags":            models.StringList(input.Tags),
	}
	if !input.SendImmediately {
		updates["scheduled_at"] = deliveryTime
	}

	if err := s.DB.Model(alert).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAlertByID(id)
}

// 5 DeleteAlert 删除通知，任何状态均可删除
func (s *NotificationService) DeleteAlert(id string) error {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(alert).Error
}

// 6 ResendAlert 重新发送通知
// 任何状态都允许重发，仅把状态置回scheduled，实际投递由调度器负责
func (s *NotificationService) ResendAlert(id string) (*models.Alert, error) {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      models.AlertStatusScheduled,
		"fail_reason": "",
	}
	if err := s.DB.Model(alert).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAlertByID(id)
}

// 7 BulkResend 批量重发，单个事务内完成，整体成功或整体失败
func (s *NotificationService) BulkResend(ids []string) error {
	if len(ids) == 0 {
		return errors.New("未选择任何通知")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Alert{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":      models.AlertStatusScheduled,
				"fail_reason": "",
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return errors.New("部分通知不存在")
		}
		return nil
	})
}

// 8 BulkDelete 批量删除，单个事务内完成，失败时不做任何局部删除
func (s *NotificationService) BulkDelete(ids []string) error {
	if len(ids) == 0 {
		return errors.New("未选择任何通知")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&models.Alert{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return errors.New("部分通知不存在")
		}
		return nil
	})
}

// 9 CancelAlert 取消通知
// 约定中的空操作：仅记录日志，不改变状态也不调用任何投递通道
func (s *NotificationService) CancelAlert(id string) error {
	if _, err := s.GetAlertByID(id); err != nil {
		return err
	}
	logger.Info("收到通知取消请求（未执行任何状态变更）: %s", id)
	return nil
}

// 10 GetStats 获取去重后的通知状态统计
func (s *NotificationService) GetStats() (models.AlertStats, error) {
	var alerts []models.Alert
	if err := s.DB.Order("created_at ASC, id ASC").Find(&alerts).Error; err != nil {
		return models.AlertStats{}, err
	}
	return ComputeAlertStats(DedupeAlerts(alerts)), nil
}

// resolveRecipientIDs 加载用户目录并解析目标用户ID
func (s *NotificationService) resolveRecipientIDs(recipient, grade string) (models.UintList, error) {
	if recipient != models.RecipientSpecific {
		return nil, nil
	}

	var users []models.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("用户目录加载失败: %w", err)
	}

	return ResolveRecipients(recipient, grade, users), nil
}

// newAlertID 生成服务端通知ID
func newAlertID(now time.Time) string {
	return fmt.Sprintf("ALT-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}
