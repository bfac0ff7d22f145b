package models

// POI状态
const (
	POIStatusOpen        = "open"
	POIStatusClosed      = "closed"
	POIStatusMaintenance = "maintenance"
)

// POI 表示园区地图上的一个兴趣点（游乐设施、餐厅、商店等）
type POI struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	CategoryID  *uint   `json:"categoryId,omitempty"`
	X           float64 `gorm:"not null;default:0" json:"x"` // 地图SVG坐标
	Y           float64 `gorm:"not null;default:0" json:"y"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
	Status      string  `gorm:"type:varchar(20);default:'open'" json:"status"`
	ImageURL    string  `gorm:"type:varchar(255)" json:"imageUrl"`

	Category *POICategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// POICategory 表示POI分类（用于地图图层筛选）
type POICategory struct {
	BaseModel
	Name  string `gorm:"type:varchar(50);unique;not null" json:"name"`
	Color string `gorm:"type:varchar(20)" json:"color"` // 地图标记颜色
	Icon  string `gorm:"type:varchar(50)" json:"icon"`
}
