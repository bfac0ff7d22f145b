package models

// Maintenance 表示单日的设施运休公告记录
// 用户提交的日期区间会按天展开为多条独立记录，首日为锚点记录
type Maintenance struct {
	BaseModel
	Label    string `gorm:"type:varchar(100);not null" json:"label"`  // 设施/游乐项目名称
	Reason   string `gorm:"type:varchar(255);not null" json:"reason"` // 运休事由
	Date     string `gorm:"type:varchar(10);not null;index" json:"date"` // 格式 "2006-01-02"
	ImageURL string `gorm:"type:varchar(255)" json:"imageUrl"`
}

// MaintenanceGroup 按日期分组后的运休记录，用于列表展示
type MaintenanceGroup struct {
	Date  string        `json:"date"`
	Items []Maintenance `json:"items"`
}
