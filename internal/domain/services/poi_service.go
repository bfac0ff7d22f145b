package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// InterfacePOIService defines the POI service interface
type InterfacePOIService interface {
	GetAllPOIs(categoryID uint, status string) ([]models.POI, error)
	GetPOIByID(id uint) (*models.POI, error)
	CreatePOI(poi *models.POI) error
	UpdatePOI(id uint, updates map[string]interface{}) (*models.POI, error)
	UpdatePOIPosition(id uint, x, y float64) (*models.POI, error)
	DeletePOI(id uint) error
	GetAllCategories() ([]models.POICategory, error)
	CreateCategory(category *models.POICategory) error
	UpdateCategory(id uint, updates map[string]interface{}) (*models.POICategory, error)
	DeleteCategory(id uint) error
}

// POIService 提供园区地图兴趣点相关的服务
type POIService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPOIService 创建一个新的POI服务
func NewPOIService(db *gorm.DB, cfg *config.Config) InterfacePOIService {
	return &POIService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllPOIs 获取所有兴趣点，支持分类和状态过滤
// 地图一次性加载全部标记，不做分页
func (s *POIService) GetAllPOIs(categoryID uint, status string) ([]models.POI, error) {
	var pois []models.POI
	query := s.DB.Model(&models.POI{}).Preload("Category")

	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if status != "" && status != FilterAll {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("id ASC").Find(&pois).Error; err != nil {
		return nil, err
	}
	return pois, nil
}

// 2 GetPOIByID 根据ID获取兴趣点
func (s *POIService) GetPOIByID(id uint) (*models.POI, error) {
	var poi models.POI
	if err := s.DB.Preload("Category").First(&poi, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("兴趣点不存在")
		}
		return nil, err
	}
	return &poi, nil
}

// 3 CreatePOI 创建兴趣点
func (s *POIService) CreatePOI(poi *models.POI) error {
	if poi.Name == "" {
		return errors.New("兴趣点名称不能为空")
	}

	if poi.CategoryID != nil {
		var count int64
		if err := s.DB.Model(&models.POICategory{}).Where("id = ?", *poi.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("POI分类不存在")
		}
	}

	if poi.Status == "" {
		poi.Status = models.POIStatusOpen
	}

	return s.DB.Create(poi).Error
}

// 4 UpdatePOI 更新兴趣点
func (s *POIService) UpdatePOI(id uint, updates map[string]interface{}) (*models.POI, error) {
	poi, err := s.GetPOIByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(poi).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetPOIByID(id)
}

// 5 UpdatePOIPosition 更新兴趣点在地图上的坐标（拖拽落点保存）
func (s *POIService) UpdatePOIPosition(id uint, x, y float64) (*models.POI, error) {
	return s.UpdatePOI(id, map[string]interface{}{"x": x, "y": y})
}

// 6 DeletePOI 删除兴趣点
func (s *POIService) DeletePOI(id uint) error {
	result := s.DB.Delete(&models.POI{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("兴趣点不存在")
	}
	return nil
}

// 7 GetAllCategories 获取所有POI分类
func (s *POIService) GetAllCategories() ([]models.POICategory, error) {
	var categories []models.POICategory
	if err := s.DB.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// 8 CreateCategory 创建POI分类
func (s *POIService) CreateCategory(category *models.POICategory) error {
	if category.Name == "" {
		return errors.New("分类名称不能为空")
	}

	var count int64
	if err := s.DB.Model(&models.POICategory{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("分类名称已存在")
	}

	return s.DB.Create(category).Error
}

// 9 UpdateCategory 更新POI分类
func (s *POIService) UpdateCategory(id uint, updates map[string]interface{}) (*models.POICategory, error) {
	var category models.POICategory
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("POI分类不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// 10 DeleteCategory 删除POI分类，分类下还有兴趣点时拒绝删除
func (s *POIService) DeleteCategory(id uint) error {
	var count int64
	if err := s.DB.Model(&models.POI{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("分类下仍有兴趣点，不能删除")
	}

	result := s.DB.Delete(&models.POICategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("POI分类不存在")
	}
	return nil
}
