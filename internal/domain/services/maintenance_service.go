package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// 运休日期的存储格式
const MaintenanceDateLayout = "2006-01-02"

// ExpandDateRange 将闭区间[start, end]按天展开为日期字符串列表
// 两端先归一到本地零点再迭代，避免夏令时偏移导致的缺天或重复
// end早于start时返回空列表
func ExpandDateRange(start, end time.Time) []string {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	var dates []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(MaintenanceDateLayout))
	}
	return dates
}

// InterfaceMaintenanceService defines the maintenance service interface
type InterfaceMaintenanceService interface {
	GetUpcoming(now time.Time) ([]models.MaintenanceGroup, error)
	GetByID(id uint) (*models.Maintenance, error)
	RegisterRange(label, reason, imageURL string, start, end time.Time) ([]models.Maintenance, error)
	Update(id uint, updates map[string]interface{}) (*models.Maintenance, error)
	UpdateWithRange(id uint, label, reason, imageURL string, start, end time.Time) ([]models.Maintenance, error)
	Delete(id uint) error
}

// MaintenanceService 提供设施运休公告相关的服务
type MaintenanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMaintenanceService 创建一个新的运休公告服务
func NewMaintenanceService(db *gorm.DB, cfg *config.Config) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetUpcoming 获取今天及之后的运休记录，按日期升序分组
// 历史记录保留在库中但不出现在列表里
func (s *MaintenanceService) GetUpcoming(now time.Time) ([]models.MaintenanceGroup, error) {
	today := now.Format(MaintenanceDateLayout)

	var records []models.Maintenance
	if err := s.DB.
		Where("date >= ?", today).
		Order("date ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	// 按日期分组，保持升序
	groups := make([]models.MaintenanceGroup, 0)
	for _, rec := range records {
		if n := len(groups); n > 0 && groups[n-1].Date == rec.Date {
			groups[n-1].Items = append(groups[n-1].Items, rec)
			continue
		}
		groups = append(groups, models.MaintenanceGroup{
			Date:  rec.Date,
			Items: []models.Maintenance{rec},
		})
	}

	return groups, nil
}

// 2 GetByID 根据ID获取单条运休记录
func (s *MaintenanceService) GetByID(id uint) (*models.Maintenance, error) {
	var record models.Maintenance
	if err := s.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("运休记录不存在")
		}
		return nil, err
	}
	return &record, nil
}

// 3 RegisterRange 登记一个运休日期区间，按天展开为多条独立记录
func (s *MaintenanceService) RegisterRange(label, reason, imageURL string, start, end time.Time) ([]models.Maintenance, error) {
	if label == "" {
		return nil, errors.New("设施名称不能为空")
	}
	if reason == "" {
		return nil, errors.New("运休事由不能为空")
	}

	dates := ExpandDateRange(start, end)
	if len(dates) == 0 {
		return nil, errors.New("结束日期不能早于开始日期")
	}

	records := make([]models.Maintenance, 0, len(dates))
	for _, date := range dates {
		records = append(records, models.Maintenance{
			Label:    label,
			Reason:   reason,
			Date:     date,
			ImageURL: imageURL,
		})
	}

	if err := s.DB.Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// 4 Update 原地更新单条运休记录
func (s *MaintenanceService) Update(id uint, updates map[string]interface{}) (*models.Maintenance, error) {
	record, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// 5 UpdateWithRange 编辑运休记录并扩展日期区间
// 首日原地更新锚点记录，其余日期新建记录并复用锚点的图片
func (s *MaintenanceService) UpdateWithRange(id uint, label, reason, imageURL string, start, end time.Time) ([]models.Maintenance, error) {
	anchor, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dates := ExpandDateRange(start, end)
	if len(dates) == 0 {
		return nil, errors.New("结束日期不能早于开始日期")
	}

	// 新上传的图片优先，否则沿用锚点原图
	if imageURL == "" {
		imageURL = anchor.ImageURL
	}

	var result []models.Maintenance
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 首日原地更新锚点记录，保持其ID不变
		if err := tx.Model(anchor).Updates(map[string]interface{}{
			"label":     label,
			"reason":    reason,
			"date":      dates[0],
			"image_url": imageURL,
		}).Error; err != nil {
			return err
		}
		result = append(result, *anchor)

		// 其余日期创建兄弟记录
		if len(dates) > 1 {
			siblings := make([]models.Maintenance, 0, len(dates)-1)
			for _, date := range dates[1:] {
				siblings = append(siblings, models.Maintenance{
					Label:    label,
					Reason:   reason,
					Date:     date,
					ImageURL: imageURL,
				})
			}
			if err := tx.Create(&siblings).Error; err != nil {
				return err
			}
			result = append(result, siblings...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reloadByIDs(result)
}

// 6 Delete 删除单条运休记录，不影响同区间的其他日期记录
func (s *MaintenanceService) Delete(id uint) error {
	result := s.DB.Delete(&models.Maintenance{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("运休记录不存在")
	}
	return nil
}

// reloadByIDs 重新加载记录，拿到数据库生成的字段
func (s *MaintenanceService) reloadByIDs(records []models.Maintenance) ([]models.Maintenance, error) {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	var fresh []models.Maintenance
	if err := s.DB.Where("id IN ?", ids).Order("date ASC, id ASC").Find(&fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}
